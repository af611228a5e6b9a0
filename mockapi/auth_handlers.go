package mockapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/users"
)

type contextKey string

const (
	contextKeyAccount contextKey = "account"
	contextKeyClaims  contextKey = "claims"
)

const emailTaken = "The email has already been taken."

type accountHandler func(w http.ResponseWriter, r *http.Request, account *users.Account)

// authed requires a valid, unrevoked bearer token for an existing account.
func (s *Server) authed(next accountHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		claims, err := s.tokens.parse(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		account, err := s.accounts.GetByID(claims.Subject)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyAccount, account)
		ctx = context.WithValue(ctx, contextKeyClaims, claims)
		next(w, r.WithContext(ctx), account)
	}
}

// owner requires the signed-in account to own the barbershop in the {id} path segment.
func (s *Server) owner(next accountHandler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, account *users.Account) {
		if account.OrganizationID() == "" || account.OrganizationID() != r.PathValue("id") {
			writeError(w, http.StatusForbidden, "This action is unauthorized.")
			return
		}
		next(w, r, account)
	})
}

// client requires a CLIENT account.
func (s *Server) client(next accountHandler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, account *users.Account) {
		if account.Role != users.RoleClient {
			writeError(w, http.StatusForbidden, "This action is unauthorized.")
			return
		}
		next(w, r, account)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds apiclient.Credentials
	if !decode(w, r, &creds) {
		return
	}
	account, err := s.accounts.GetByEmail(creds.Email)
	if err != nil || !users.CheckPasswordHash(creds.Password, account.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	s.writeAuth(w, http.StatusOK, account)
}

func (s *Server) register(role users.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in apiclient.Registration
		if !decode(w, r, &in) {
			return
		}
		switch {
		case strings.TrimSpace(in.Name) == "":
			writeValidation(w, "name", "The name field is required.")
			return
		case !strings.Contains(in.Email, "@"):
			writeValidation(w, "email", "The email must be a valid email address.")
			return
		case in.Password != in.PasswordConfirmation:
			writeValidation(w, "password", "The password confirmation does not match.")
			return
		}
		if err := users.ValidatePasswordStrength(in.Password); err != nil {
			writeValidation(w, "password", err.Error())
			return
		}
		account, err := s.CreateAccount(role, in)
		if errors.Is(err, errors.ErrEmailTaken) {
			writeValidation(w, "email", emailTaken)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeAuth(w, http.StatusCreated, account)
	}
}

func (s *Server) writeAuth(w http.ResponseWriter, status int, account *users.Account) {
	token, err := s.tokens.issue(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, status, apiclient.AuthResponse{Token: token, User: account.Profile})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	if claims, ok := r.Context().Value(contextKeyClaims).(*Claims); ok {
		s.tokens.revoke(claims.ID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, account *users.Account) {
	writeData(w, http.StatusOK, account.Profile)
}

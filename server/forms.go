package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/rs/zerolog/log"
)

type loginView struct {
	Email        string
	Redirect     string
	RegisterHref string
}

type registerView struct {
	Role   users.Role
	Action string
	Form   apiclient.Registration
	Errors map[string][]string
}

func (s *Server) loadLogin(_ context.Context, to *navigation.Resolved) (any, error) {
	return s.loginView(to.Query.Get(navigation.QueryRedirect), ""), nil
}

func (s *Server) loginView(redirect, email string) loginView {
	v := loginView{Email: email, Redirect: redirect, RegisterHref: s.href(navigation.RouteRegisterClient, nil)}
	if s.app.Session.SelectedRole() == users.RoleOwner {
		v.RegisterHref = s.href(navigation.RouteRegisterProvider, nil)
	}
	return v
}

func (s *Server) loadRegister(_ context.Context, to *navigation.Resolved) (any, error) {
	return s.registerView(to), nil
}

func (s *Server) registerView(to *navigation.Resolved) registerView {
	v := registerView{Role: users.RoleClient, Action: to.Path}
	if to.Name == navigation.RouteRegisterProvider {
		v.Role = users.RoleOwner
	}
	return v
}

// AccountTypeSubmitHandler records which kind of account the visitor wants (POST /).
func (s *Server) AccountTypeSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		role := users.ParseRole(r.PostForm.Get(fieldRole))
		if !role.Known() {
			data := s.newPageData(routeFrom(r.Context()))
			data.Error = "Choose an account type."
			s.render(w, http.StatusUnprocessableEntity, pageTable[navigation.RouteAccountType].template, data)
			return
		}
		s.app.Session.SetSelectedRole(role)
		http.Redirect(w, r, s.pathOf(navigation.RouteLogin), http.StatusSeeOther)
	}
}

// LoginSubmitHandler processes the login form (POST /login).
func (s *Server) LoginSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostForm.Get(fieldEmail))
		password := r.PostForm.Get(fieldPassword)
		redirect := r.PostForm.Get(fieldRedirect)

		if email == "" || password == "" {
			s.renderLoginError(w, r, http.StatusUnprocessableEntity, "Email and password are required.", redirect, email)
			return
		}

		landed, err := s.app.Login(r.Context(), email, password, redirect)
		if err != nil {
			log.Err(err).Str("email", email).Msg("Login failed")
			status, message := formError(err)
			if errors.Is(err, errors.ErrInvalidCredentials) {
				status, message = http.StatusUnauthorized, "Invalid email or password."
			}
			s.renderLoginError(w, r, status, message, redirect, email)
			return
		}
		http.Redirect(w, r, landed.FullPath, http.StatusSeeOther)
	}
}

func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, status int, message, redirect, email string) {
	data := s.newPageData(routeFrom(r.Context()))
	data.Error = message
	data.Content = s.loginView(redirect, email)
	s.render(w, status, pageTable[navigation.RouteLogin].template, data)
}

// RegisterSubmitHandler processes the sign-up forms of both roles.
func (s *Server) RegisterSubmitHandler(role users.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		to := routeFrom(r.Context())
		in := apiclient.Registration{
			Name:                 strings.TrimSpace(r.PostForm.Get(fieldName)),
			Email:                strings.TrimSpace(r.PostForm.Get(fieldEmail)),
			Password:             r.PostForm.Get(fieldPassword),
			PasswordConfirmation: r.PostForm.Get(fieldPasswordConfirmation),
			Phone:                strings.TrimSpace(r.PostForm.Get(fieldPhone)),
		}
		if role == users.RoleOwner {
			in.BarbershopName = strings.TrimSpace(r.PostForm.Get(fieldBarbershopName))
		}

		landed, err := s.app.Register(r.Context(), role, in)
		if err != nil {
			log.Err(err).Str("email", in.Email).Str("role", role.String()).Msg("Registration failed")
			status, message := formError(err)

			view := s.registerView(to)
			view.Form = in
			view.Form.Password, view.Form.PasswordConfirmation = "", ""
			var apiErr *apiclient.APIError
			if errors.As(err, &apiErr) {
				view.Errors = apiErr.Errors
			}

			data := s.newPageData(to)
			data.Error = message
			data.Content = view
			s.render(w, status, pageTable[to.Name].template, data)
			return
		}
		http.Redirect(w, r, landed.FullPath, http.StatusSeeOther)
	}
}

// LogoutHandler ends the session. The local session is cleared even when the
// API can't be reached.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.app.Logout(r.Context()); err != nil {
			log.Err(err).Msg("Logout")
		}
		http.Redirect(w, r, s.pathOf(navigation.RouteLogin), http.StatusSeeOther)
	}
}

// formError turns an API failure into a status and a message for the form.
func formError(err error) (int, string) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		switch {
		case errors.Is(err, errors.ErrInvalidRequest):
			return http.StatusUnprocessableEntity, apiErr.Message
		case apiErr.Message != "":
			return http.StatusBadGateway, apiErr.Message
		}
	}
	return http.StatusBadGateway, "The service is unavailable. Please try again."
}

// Package mockapi is an in-memory fake of the remote barbershop API. It backs local
// development (barber mockapi) and the HTTP tests of the client packages.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-barber-client/users"
	fakeuserrepo "github.com/jrsteele09/go-barber-client/users/repofake"
	"github.com/rs/zerolog/log"
)

// Prefix is where the API is mounted; clients use <server>/api/ as base URL.
const Prefix = "/api"

// Server is the fake API. It is safe for concurrent use.
type Server struct {
	mux      *http.ServeMux
	accounts users.AccountRepo
	tokens   *tokenIssuer
	data     *store
	now      func() time.Time
}

type Option func(*Server)

// WithClock fixes the server's notion of now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
		s.tokens.now = now
	}
}

func New(secret string, ttl time.Duration, opts ...Option) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		accounts: fakeuserrepo.NewFakeAccountRepo(),
		tokens:   newTokenIssuer(secret, ttl),
		data:     newStore(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	method, path, _ := strings.Cut(pattern, " ")
	s.mux.HandleFunc(method+" "+Prefix+path, h)
}

func (s *Server) initRoutes() {
	// Auth
	s.handle("POST /login", s.login)
	s.handle("POST /register/client", s.register(users.RoleClient))
	s.handle("POST /register/owner", s.register(users.RoleOwner))
	s.handle("POST /logout", s.authed(s.logout))
	s.handle("GET /me", s.authed(s.me))

	// Barbershops (any signed-in user may browse)
	s.handle("GET /barbershops", s.authed(s.listBarbershops))
	s.handle("GET /barbershops/search", s.authed(s.searchBarbershops))
	s.handle("GET /barbershops/{id}", s.authed(s.showBarbershop))
	s.handle("PUT /barbershops/{id}", s.owner(s.updateBarbershop))
	s.handle("GET /barbershops/{id}/available-slots", s.authed(s.availableSlots))

	s.handle("GET /barbershops/{id}/services", s.authed(s.listServices))
	s.handle("POST /barbershops/{id}/services", s.owner(s.createService))
	s.handle("GET /barbershops/{id}/services/{sid}", s.authed(s.getService))
	s.handle("PUT /barbershops/{id}/services/{sid}", s.owner(s.updateService))
	s.handle("DELETE /barbershops/{id}/services/{sid}", s.owner(s.deleteService))

	s.handle("GET /barbershops/{id}/barbers", s.authed(s.listBarbers))
	s.handle("POST /barbershops/{id}/barbers", s.owner(s.createBarber))
	s.handle("PUT /barbershops/{id}/barbers/{bid}", s.owner(s.updateBarber))
	s.handle("DELETE /barbershops/{id}/barbers/{bid}", s.owner(s.deleteBarber))

	s.handle("GET /barbershops/{id}/appointments", s.owner(s.listAppointments))
	s.handle("POST /barbershops/{id}/appointments", s.authed(s.createAppointment))
	s.handle("GET /barbershops/{id}/appointments/{aid}", s.owner(s.getAppointment))
	s.handle("PUT /barbershops/{id}/appointments/{aid}", s.owner(s.updateAppointment))
	s.handle("PATCH /barbershops/{id}/appointments/{aid}/status", s.owner(s.updateAppointmentStatus))
	s.handle("DELETE /barbershops/{id}/appointments/{aid}", s.owner(s.deleteAppointment))

	s.handle("GET /barbershops/{id}/business-hours", s.authed(s.listHours))
	s.handle("POST /barbershops/{id}/business-hours", s.owner(s.createHour))
	s.handle("PUT /barbershops/{id}/business-hours/{hid}", s.owner(s.updateHour))
	s.handle("DELETE /barbershops/{id}/business-hours/{hid}", s.owner(s.deleteHour))

	s.handle("GET /barbershops/{id}/clients", s.owner(s.listCustomers))
	s.handle("GET /barbershops/{id}/clients/{cid}", s.owner(s.getCustomer))
	s.handle("GET /barbershops/{id}/clients/{cid}/appointments", s.owner(s.customerHistory))
	s.handle("PATCH /barbershops/{id}/clients/{cid}/notes", s.owner(s.updateCustomerNotes))

	// Client area
	s.handle("GET /client/favorites", s.client(s.listFavorites))
	s.handle("POST /client/favorites", s.client(s.addFavorite))
	s.handle("DELETE /client/favorites/{id}", s.client(s.removeFavorite))
	s.handle("GET /client/favorites/{id}/check", s.client(s.checkFavorite))
	s.handle("GET /client/profile", s.client(s.getProfile))
	s.handle("PUT /client/profile", s.client(s.updateProfile))
	s.handle("PUT /client/profile/password", s.client(s.changePassword))
	s.handle("GET /client/profile/stats", s.client(s.profileStats))
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("mockapi: failed to encode response")
	}
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, map[string]any{"data": v})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeValidation(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Message: message,
		Errors:  map[string][]string{field: {message}},
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

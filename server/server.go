// Package server is the local web UI. Every page request is a navigation: it goes
// through the navigation guard before anything is rendered.
package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-barber-client/app"
	"github.com/jrsteele09/go-barber-client/internal/config"
	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	appName    string
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	app        *app.App
	pages      map[string]*template.Template // by template file
	now        func() time.Time
}

type Option func(*Server)

// WithClock fixes the time pages use for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(cfg config.EnvConfig, a *app.App, opts ...Option) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:        cfg.GetEnv(),
		appName:    cfg.GetAppName(),
		mux:        http.NewServeMux(),
		fileServer: FileServerHandler(),
		app:        a,
		pages:      pages,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// pathOf is the path of a parameterless named route.
func (s *Server) pathOf(name string) string {
	to, err := s.app.Router.Resolve(navigation.Location{Name: name})
	if err != nil {
		panic("server: unknown route " + name)
	}
	return to.Path
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
	for _, rec := range s.app.Router.Records() {
		if rec.Name != "" {
			logRoute("PAGE", rec.Pattern+" "+Gray+rec.Name+ResetColor)
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msg(fmt.Sprintf("[%-19s] %s", colourMethod(method), path))
}

func logError(method, path, error string) {
	log.Error().Msg(fmt.Sprintf("[%-19s] %s %s", colourMethod(method), path, Red+error+ResetColor))
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

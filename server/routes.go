package server

import (
	"net/http"

	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/jrsteele09/go-barber-client/users"
)

func (s *Server) initRoutes() {
	// Forms
	s.RegisterRouteFunc("POST /{$}", ChainMiddleware(s.AccountTypeSubmitHandler(), s.HTMLMiddleWare(s.GuardMiddleware)...))
	s.RegisterRouteFunc("POST "+s.pathOf(navigation.RouteLogin), ChainMiddleware(s.LoginSubmitHandler(), s.HTMLMiddleWare(s.GuardMiddleware)...))
	s.RegisterRouteFunc("POST "+s.pathOf(navigation.RouteRegisterClient), ChainMiddleware(s.RegisterSubmitHandler(users.RoleClient), s.HTMLMiddleWare(s.GuardMiddleware)...))
	s.RegisterRouteFunc("POST "+s.pathOf(navigation.RouteRegisterProvider), ChainMiddleware(s.RegisterSubmitHandler(users.RoleOwner), s.HTMLMiddleWare(s.GuardMiddleware)...))
	s.RegisterRouteFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))

	// Every other GET is a page of the navigation table.
	s.RegisterRouteFunc("GET /", ChainMiddleware(s.PageHandler(), s.HTMLMiddleWare(s.GuardMiddleware)...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	files := http.StripPrefix(RouteStatic, s.fileServer)
	return func(w http.ResponseWriter, r *http.Request) {
		files.ServeHTTP(w, r)
	}
}

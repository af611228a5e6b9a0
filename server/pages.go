package server

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

type loaderFunc func(s *Server, ctx context.Context, to *navigation.Resolved) (any, error)

type page struct {
	template string
	load     loaderFunc
}

// pageTable maps every named route to its template and data loader.
var pageTable = map[string]page{
	navigation.RouteAccountType:      {template: "pages/account_type.html"},
	navigation.RouteLogin:            {template: "pages/login.html", load: (*Server).loadLogin},
	navigation.RouteRegisterProvider: {template: "pages/register.html", load: (*Server).loadRegister},
	navigation.RouteRegisterClient:   {template: "pages/register.html", load: (*Server).loadRegister},

	navigation.RouteProviderOnboarding: {template: "pages/detail.html", load: (*Server).loadOnboarding},
	navigation.RouteDashboard:          {template: "pages/dashboard.html", load: (*Server).loadDashboard},
	navigation.RouteServices:           {template: "pages/list.html", load: (*Server).loadServices},
	navigation.RouteAddService:         {template: "pages/detail.html", load: (*Server).loadAddService},
	navigation.RouteEditService:        {template: "pages/detail.html", load: (*Server).loadEditService},
	navigation.RouteManageTeam:         {template: "pages/list.html", load: (*Server).loadTeam},
	navigation.RouteAddTeamMember:      {template: "pages/detail.html", load: (*Server).loadAddTeamMember},
	navigation.RouteEditTeamMember:     {template: "pages/detail.html", load: (*Server).loadEditTeamMember},
	navigation.RouteAppointments:       {template: "pages/list.html", load: (*Server).loadAppointments},
	navigation.RouteAppointmentDetails: {template: "pages/detail.html", load: (*Server).loadAppointmentDetails},
	navigation.RouteWorkingHours:       {template: "pages/list.html", load: (*Server).loadWorkingHours},
	navigation.RouteProviderProfile:    {template: "pages/detail.html", load: (*Server).loadProviderProfile},
	navigation.RouteClientsList:        {template: "pages/list.html", load: (*Server).loadClients},
	navigation.RouteClientDetails:      {template: "pages/detail.html", load: (*Server).loadClientDetails},
	navigation.RouteEditBarbershop:     {template: "pages/detail.html", load: (*Server).loadEditBarbershop},

	navigation.RouteClientDashboard:    {template: "pages/list.html", load: (*Server).loadBarbershops},
	navigation.RouteBarbershopDetails:  {template: "pages/detail.html", load: (*Server).loadBarbershopDetails},
	navigation.RouteBarbershopBooking:  {template: "pages/list.html", load: (*Server).loadBooking},
	navigation.RouteClientAppointments: {template: "pages/detail.html", load: (*Server).loadClientAppointments},
	navigation.RouteClientFavorites:    {template: "pages/list.html", load: (*Server).loadFavorites},
	navigation.RouteClientProfile:      {template: "pages/detail.html", load: (*Server).loadClientProfile},
}

type link struct {
	Label  string
	Href   string
	Active bool
}

// pageData is what the layout renders.
type pageData struct {
	AppName      string
	Title        string
	Route        *navigation.Resolved
	User         *users.Profile
	SelectedRole users.Role
	Nav          []link
	Notice       string
	Error        string
	Content      any
}

// PageHandler renders the page of the route the guard allowed.
func (s *Server) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		to := routeFrom(r.Context())
		if to == nil {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		pg, ok := pageTable[to.Name]
		if !ok {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		data := s.newPageData(to)
		if pg.load != nil {
			content, err := pg.load(s, r.Context(), to)
			if apiclient.IsUnauthenticated(err) {
				// The session is already gone; the login page says why.
				http.Redirect(w, r, s.loginHref(to.FullPath), http.StatusSeeOther)
				return
			}
			if err != nil {
				logError(r.Method, r.URL.Path, err.Error())
				data.Error = err.Error()
			}
			data.Content = content
		}
		s.render(w, http.StatusOK, pg.template, data)
	}
}

func (s *Server) newPageData(to *navigation.Resolved) pageData {
	data := pageData{
		AppName:      s.appName,
		Title:        to.Title(),
		Route:        to,
		User:         s.app.Session.User(),
		SelectedRole: s.app.Session.SelectedRole(),
	}
	data.Nav = s.navFor(s.app.Session.Role(), to)
	if to.Name == navigation.RouteLogin && s.app.SignedOut() {
		data.Notice = "Your session has ended. Please sign in again."
	}
	return data
}

func (s *Server) navFor(role users.Role, current *navigation.Resolved) []link {
	var names []string
	switch role {
	case users.RoleOwner:
		names = []string{
			navigation.RouteDashboard, navigation.RouteAppointments, navigation.RouteServices,
			navigation.RouteManageTeam, navigation.RouteWorkingHours, navigation.RouteClientsList,
			navigation.RouteProviderProfile,
		}
	case users.RoleClient:
		names = []string{
			navigation.RouteClientDashboard, navigation.RouteClientAppointments,
			navigation.RouteClientFavorites, navigation.RouteClientProfile,
		}
	default:
		names = []string{navigation.RouteAccountType, navigation.RouteLogin}
	}

	nav := make([]link, 0, len(names))
	for _, name := range names {
		to, err := s.app.Router.Resolve(navigation.Location{Name: name})
		if err != nil {
			continue
		}
		nav = append(nav, link{Label: to.Title(), Href: to.Path, Active: name == current.Name})
	}
	return nav
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Error().Str("template", name).Msg("Unknown page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		log.Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// href is the full path of a named route, or "" if it can't be built.
func (s *Server) href(name string, params map[string]string) string {
	to, err := s.app.Router.Resolve(navigation.Location{Name: name, Params: params})
	if err != nil {
		return ""
	}
	return to.FullPath
}

func (s *Server) loginHref(redirect string) string {
	to, err := s.app.Router.Resolve(navigation.Location{
		Name:  navigation.RouteLogin,
		Query: url.Values{navigation.QueryRedirect: {redirect}},
	})
	if err != nil {
		return "/"
	}
	return to.FullPath
}

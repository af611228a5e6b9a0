package navigation

import "github.com/jrsteele09/go-barber-client/users"

// Meta is the static requirement and display data attached to a route.
type Meta struct {
	Title        string
	RequiresAuth bool
	Role         users.Role
}

// Route is a route definition. Child paths are relative to their parent.
// A path of "*" matches anything not matched by another route.
type Route struct {
	Name     string
	Path     string
	Redirect *Location
	Meta     Meta
	Children []Route
}

// DefaultRoutes is the client's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteAccountType, Path: "/", Meta: Meta{Title: "Account type"}},

		// Public
		{Name: RouteLogin, Path: "/login", Meta: Meta{Title: "Login"}},
		{Name: RouteRegisterProvider, Path: "/provider/register", Meta: Meta{Title: "Barbershop sign-up"}},
		{Name: RouteRegisterClient, Path: "/client/register", Meta: Meta{Title: "Client sign-up"}},

		// Provider onboarding
		{
			Name: RouteProviderOnboarding,
			Path: "/provider/onboarding",
			Meta: Meta{Title: "Initial setup", RequiresAuth: true, Role: users.RoleOwner},
		},

		// Provider area
		{
			Path:     "/provider/app",
			Redirect: &Location{Name: RouteDashboard},
			Meta:     Meta{RequiresAuth: true, Role: users.RoleOwner},
			Children: []Route{
				{Name: RouteDashboard, Path: "dashboard", Meta: Meta{Title: "Dashboard"}},
				{Name: RouteServices, Path: "services", Meta: Meta{Title: "My services"}},
				{Name: RouteAddService, Path: "service/novo", Meta: Meta{Title: "Add service"}},
				{Name: RouteEditService, Path: "service/editar/:id", Meta: Meta{Title: "Edit service"}},
				{Name: RouteManageTeam, Path: "equipe", Meta: Meta{Title: "Manage team"}},
				{Name: RouteAddTeamMember, Path: "equipe/novo", Meta: Meta{Title: "Add team member"}},
				{Name: RouteEditTeamMember, Path: "equipe/editar/:memberId", Meta: Meta{Title: "Edit team member"}},
				{Name: RouteAppointments, Path: "agendamentos", Meta: Meta{Title: "My appointments"}},
				{Name: RouteAppointmentDetails, Path: "agendamento/:id/detalhes", Meta: Meta{Title: "Appointment details"}},
				{Name: RouteWorkingHours, Path: "horarios", Meta: Meta{Title: "Working hours"}},
				{Name: RouteProviderProfile, Path: "profile", Meta: Meta{Title: "Profile"}},
				{Name: RouteClientsList, Path: "clients", Meta: Meta{Title: "My clients"}},
				{Name: RouteClientDetails, Path: "clients/:clientId", Meta: Meta{Title: "Client details"}},
				{Name: RouteEditBarbershop, Path: "edit-barbershop", Meta: Meta{Title: "Edit barbershop"}},
			},
		},

		// Client area
		{
			Path:     "/client",
			Redirect: &Location{Name: RouteClientDashboard},
			Meta:     Meta{RequiresAuth: true, Role: users.RoleClient},
			Children: []Route{
				{Name: RouteClientDashboard, Path: "dashboard", Meta: Meta{Title: "Home"}},
				{Name: RouteBarbershopDetails, Path: "barbershop/:id", Meta: Meta{Title: "Barbershop"}},
				{Name: RouteBarbershopBooking, Path: "barbershop/:id/booking", Meta: Meta{Title: "Book"}},
				{Name: RouteClientAppointments, Path: "appointments", Meta: Meta{Title: "My appointments"}},
				{Name: RouteClientFavorites, Path: "favorites", Meta: Meta{Title: "Favorites"}},
				{Name: RouteClientProfile, Path: "profile", Meta: Meta{Title: "Profile"}},
			},
		},

		// Unknown paths go back to the start.
		{Path: "*", Redirect: &Location{Path: "/"}},
	}
}

// HomeFor returns the landing route of a role, or "" for unrecognised roles.
func HomeFor(role users.Role) string {
	switch role {
	case users.RoleOwner:
		return RouteDashboard
	case users.RoleClient:
		return RouteClientDashboard
	}
	return ""
}

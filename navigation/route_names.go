package navigation

// Route names. All screens are addressed by these names so links and redirects
// can't drift from the route table.
const (
	// Pre-authentication
	RouteAccountType      = "AccountType"
	RouteLogin            = "Login"
	RouteRegisterProvider = "RegisterProvider"
	RouteRegisterClient   = "RegisterClient"

	// Provider (OWNER) area
	RouteProviderOnboarding = "BarberOnboardingBarber"
	RouteDashboard          = "Dashboard"
	RouteServices           = "Services"
	RouteAddService         = "AddService"
	RouteEditService        = "EditService"
	RouteManageTeam         = "ManageTeam"
	RouteAddTeamMember      = "AddTeamMember"
	RouteEditTeamMember     = "EditTeamMember"
	RouteAppointments       = "Appointments"
	RouteAppointmentDetails = "AppointmentDetails"
	RouteWorkingHours       = "WorkingHours"
	RouteProviderProfile    = "ProviderProfile"
	RouteClientsList        = "ClientsList"
	RouteClientDetails      = "ClientDetails"
	RouteEditBarbershop     = "EditBarbershop"

	// Client area
	RouteClientDashboard    = "ClientDashboard"
	RouteBarbershopDetails  = "BarbershopDetails"
	RouteBarbershopBooking  = "BarbershopBooking"
	RouteClientAppointments = "ClientAppointments"
	RouteClientFavorites    = "ClientFavorites"
	RouteClientProfile      = "ClientProfile"
)

// QueryRedirect carries the originally requested path on the Login route.
const QueryRedirect = "redirect"

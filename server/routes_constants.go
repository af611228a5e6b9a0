package server

// Routes served outside the navigation table.
const (
	RouteStatic = "/static/"
	RouteLogout = "/logout"
)

// Form field names.
const (
	fieldEmail                = "email"
	fieldPassword             = "password"
	fieldPasswordConfirmation = "password_confirmation"
	fieldName                 = "name"
	fieldPhone                = "phone"
	fieldBarbershopName       = "barbershop_name"
	fieldRole                 = "role"
	fieldRedirect             = "redirect"
)

// Query parameters used by pages.
const (
	queryDate   = "date"
	queryBarber = "barber"
	querySearch = "search"
	queryNotice = "notice"
)

const noticeSignedOut = "signed-out"

package apiclient

import "github.com/jrsteele09/go-barber-client/users"

// Credentials for the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload for both roles.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Phone                string `json:"phone,omitempty"`
	BarbershopName       string `json:"barbershop_name,omitempty"` // owners only
}

// AuthResponse is what login and registration return.
type AuthResponse struct {
	Token string        `json:"token"`
	User  users.Profile `json:"user"`
}

type Address struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type Barbershop struct {
	ID                 string   `json:"id"`
	OwnerID            string   `json:"owner_id,omitempty"`
	Name               string   `json:"name"`
	CompanyCode        string   `json:"company_code,omitempty"`
	Biography          string   `json:"biography,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	RequiresPrepayment bool     `json:"requires_prepayment"`
	Address            *Address `json:"address,omitempty"`
	LogoURL            string   `json:"logo_url,omitempty"`
	CoverURL           string   `json:"cover_url,omitempty"`
	RatingAverage      *float64 `json:"rating_average,omitempty"`
	RatingCount        *int     `json:"rating_count,omitempty"`
}

type BarbershopFilters struct {
	Category  string // all, nearby, top-rated
	Latitude  *float64
	Longitude *float64
	Radius    *float64
	Search    string
	Page      int
}

type UpdateBarbershop struct {
	Name               *string  `json:"name,omitempty"`
	CompanyCode        *string  `json:"company_code,omitempty"`
	Biography          *string  `json:"biography,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	RequiresPrepayment *bool    `json:"requires_prepayment,omitempty"`
	Address            *Address `json:"address,omitempty"`
}

type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// Service is something a barbershop sells (a haircut, a shave).
type Service struct {
	ID              string  `json:"id"`
	BarbershopID    string  `json:"barbershop_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

type ServiceInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

type Barber struct {
	ID              string   `json:"id"`
	BarbershopID    string   `json:"barbershop_id"`
	Name            string   `json:"name"`
	ProfileImageURL *string  `json:"profile_image_url"`
	Specialties     *string  `json:"specialties"`
	IsActive        bool     `json:"is_active"`
	Order           int      `json:"order"`
	RatingAverage   *float64 `json:"rating_average"`
	RatingCount     *int     `json:"rating_count"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}

type BarberInput struct {
	Name            string  `json:"name,omitempty"`
	Specialties     *string `json:"specialties,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// Appointment status ids as the API defines them.
const (
	StatusPending   = 1
	StatusConfirmed = 2
	StatusCompleted = 3
	StatusCancelled = 4
)

type Appointment struct {
	ID           string             `json:"id"`
	BarbershopID string             `json:"barbershop_id"`
	ClientID     string             `json:"client_id"`
	BarberID     string             `json:"barber_id"`
	ServiceID    string             `json:"service_id"`
	StatusID     int                `json:"status_id"`
	StartTime    string             `json:"start_time"`
	EndTime      string             `json:"end_time"`
	Client       *AppointmentClient `json:"client,omitempty"`
	Barber       *AppointmentBarber `json:"barber,omitempty"`
	Service      *Service           `json:"service,omitempty"`
	CreatedAt    string             `json:"created_at,omitempty"`
	UpdatedAt    string             `json:"updated_at,omitempty"`
}

type AppointmentClient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type AppointmentBarber struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Specialties string `json:"specialties,omitempty"`
}

type AppointmentInput struct {
	ClientID  string `json:"client_id,omitempty"`
	BarberID  string `json:"barber_id,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	StatusID  int    `json:"status_id,omitempty"`
}

type AppointmentFilters struct {
	Date     string // YYYY-MM-DD
	StatusID int
	BarberID string
}

// WorkingHour is one weekday's opening window. DayOfWeek 0 is Sunday.
type WorkingHour struct {
	ID           string `json:"id"`
	BarbershopID string `json:"barbershop_id"`
	DayOfWeek    int    `json:"day_of_week"`
	IsActive     bool   `json:"is_active"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

type WorkingHourInput struct {
	DayOfWeek int    `json:"day_of_week"`
	IsActive  bool   `json:"is_active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Customer is a client as seen by a barbershop.
type Customer struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone,omitempty"`
	CreatedAt         string  `json:"created_at,omitempty"`
	TotalAppointments int     `json:"total_appointments"`
	TotalSpent        float64 `json:"total_spent"`
	Notes             string  `json:"notes,omitempty"`
}

type CustomerHistoryEntry struct {
	ID           string  `json:"id"`
	ServiceName  string  `json:"service_name"`
	ServicePrice float64 `json:"service_price"`
	StartTime    string  `json:"start_time"`
	StatusID     int     `json:"status_id"`
}

type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type PasswordChange struct {
	CurrentPassword         string `json:"current_password"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

type ProfileStats struct {
	TotalAppointments int     `json:"total_appointments"`
	TotalSpent        float64 `json:"total_spent"`
	FavoriteCount     int     `json:"favorite_count"`
}

type DashboardStats struct {
	AppointmentsToday int     `json:"appointments_today"`
	RevenueMonth      float64 `json:"revenue_month"`
	RatingAverage     float64 `json:"rating_average"`
}

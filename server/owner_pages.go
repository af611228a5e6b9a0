package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/navigation"
)

type dashboardView struct {
	Stats *apiclient.DashboardStats
	Today table
}

func (s *Server) shopID() (string, error) {
	id := s.app.Session.OrganizationID()
	if id == "" {
		return "", errors.Wrapf(errors.ErrNotFound, "no barbershop linked to this account")
	}
	return id, nil
}

func (s *Server) loadDashboard(ctx context.Context, _ *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	now := s.now()
	stats, err := s.app.API.Dashboard.Stats(ctx, shopID, now)
	if err != nil {
		return nil, err
	}
	today, err := s.app.API.Dashboard.TodayAppointments(ctx, shopID, now)
	if err != nil {
		return nil, err
	}
	return dashboardView{Stats: stats, Today: s.appointmentsTable("Today", today)}, nil
}

func (s *Server) appointmentsTable(heading string, list []apiclient.Appointment) table {
	t := table{
		Heading: heading,
		Columns: []string{"When", "Client", "Service", "Barber", "Status"},
		Empty:   "No appointments.",
	}
	for _, a := range list {
		t.Rows = append(t.Rows, row{
			Href:  s.href(navigation.RouteAppointmentDetails, map[string]string{"id": a.ID}),
			Cells: []string{when(a.StartTime), clientName(a), serviceName(a), barberName(a), statusLabel(a.StatusID)},
		})
	}
	return t
}

func (s *Server) loadServices(ctx context.Context, _ *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	services, err := s.app.API.Services.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	t := table{
		Heading: "Services",
		Columns: []string{"Name", "Price", "Duration", "Active"},
		Empty:   "No services yet.",
		Links:   []link{{Label: "Add service", Href: s.href(navigation.RouteAddService, nil)}},
	}
	for _, svc := range services {
		t.Rows = append(t.Rows, row{
			Href:  s.href(navigation.RouteEditService, map[string]string{"id": svc.ID}),
			Cells: []string{svc.Name, money(svc.Price), fmt.Sprintf("%d min", svc.DurationMinutes), yesNo(svc.IsActive)},
		})
	}
	return t, nil
}

func (s *Server) loadAddService(_ context.Context, _ *navigation.Resolved) (any, error) {
	return detail{
		Heading: "New service",
		Empty:   "Fill in name, price and duration to add a service.",
		Links:   []link{{Label: "Back to services", Href: s.href(navigation.RouteServices, nil)}},
	}, nil
}

func (s *Server) loadEditService(ctx context.Context, to *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	svc, err := s.app.API.Services.Get(ctx, shopID, to.Params["id"])
	if err != nil {
		return nil, err
	}
	return detail{
		Heading: svc.Name,
		Fields: []field{
			{"Description", svc.Description},
			{"Price", money(svc.Price)},
			{"Duration", fmt.Sprintf("%d min", svc.DurationMinutes)},
			{"Active", yesNo(svc.IsActive)},
		},
		Links: []link{{Label: "Back to services", Href: s.href(navigation.RouteServices, nil)}},
	}, nil
}

func (s *Server) loadTeam(ctx context.Context, _ *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	barbers, err := s.app.API.Barbers.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	t := table{
		Heading: "Team",
		Columns: []string{"Name", "Specialties", "Rating", "Active"},
		Empty:   "No team members yet.",
		Links:   []link{{Label: "Add team member", Href: s.href(navigation.RouteAddTeamMember, nil)}},
	}
	for _, b := range barbers {
		t.Rows = append(t.Rows, row{
			Href:  s.href(navigation.RouteEditTeamMember, map[string]string{"memberId": b.ID}),
			Cells: []string{b.Name, utils.Value(b.Specialties), rating(b.RatingAverage, b.RatingCount), yesNo(b.IsActive)},
		})
	}
	return t, nil
}

func (s *Server) loadAddTeamMember(_ context.Context, _ *navigation.Resolved) (any, error) {
	return detail{
		Heading: "New team member",
		Empty:   "Add a barber with a name and specialties.",
		Links:   []link{{Label: "Back to team", Href: s.href(navigation.RouteManageTeam, nil)}},
	}, nil
}

func (s *Server) loadEditTeamMember(ctx context.Context, to *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	barbers, err := s.app.API.Barbers.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for _, b := range barbers {
		if b.ID != to.Params["memberId"] {
			continue
		}
		return detail{
			Heading: b.Name,
			Fields: []field{
				{"Specialties", utils.Value(b.Specialties)},
				{"Rating", rating(b.RatingAverage, b.RatingCount)},
				{"Active", yesNo(b.IsActive)},
			},
			Links: []link{{Label: "Back to team", Href: s.href(navigation.RouteManageTeam, nil)}},
		}, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "team member %q", to.Params["memberId"])
}

func (s *Server) loadAppointments(ctx context.Context, to *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	filters := apiclient.AppointmentFilters{
		Date:     to.Query.Get(queryDate),
		BarberID: to.Query.Get(queryBarber),
	}
	list, err := s.app.API.Appointments.List(ctx, shopID, filters)
	if err != nil {
		return nil, err
	}
	heading := "Appointments"
	if filters.Date != "" {
		heading += " on " + filters.Date
	}
	return s.appointmentsTable(heading, list), nil
}

func (s *Server) loadAppointmentDetails(ctx context.Context, to *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	a, err := s.app.API.Appointments.Get(ctx, shopID, to.Params["id"])
	if err != nil {
		return nil, err
	}
	d := detail{
		Heading: "Appointment " + when(a.StartTime),
		Fields: []field{
			{"Client", clientName(*a)},
			{"Service", serviceName(*a)},
			{"Barber", barberName(*a)},
			{"Starts", when(a.StartTime)},
			{"Ends", when(a.EndTime)},
			{"Status", statusLabel(a.StatusID)},
		},
		Links: []link{{Label: "Back to appointments", Href: s.href(navigation.RouteAppointments, nil)}},
	}
	if a.Service != nil {
		d.Fields = append(d.Fields, field{"Price", money(a.Service.Price)})
	}
	return d, nil
}

func (s *Server) loadWorkingHours(ctx context.Context, _ *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	hours, err := s.app.API.WorkingHours.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	t := table{
		Heading: "Working hours",
		Columns: []string{"Day", "Opens", "Closes", "Open"},
		Empty:   "No working hours set.",
	}
	for _, h := range hours {
		t.Rows = append(t.Rows, row{Cells: []string{weekday(h.DayOfWeek), h.StartTime, h.EndTime, yesNo(h.IsActive)}})
	}
	return t, nil
}

func (s *Server) loadProviderProfile(ctx context.Context, _ *navigation.Resolved) (any, error) {
	me, err := s.app.API.Auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	d := detail{
		Heading: me.Name,
		Fields:  []field{{"Email", me.Email}, {"Phone", me.Phone}},
		Links:   []link{{Label: "Edit barbershop", Href: s.href(navigation.RouteEditBarbershop, nil)}},
	}
	if me.Organization != nil {
		d.Fields = append(d.Fields, field{"Barbershop", me.Organization.Name})
	}
	return d, nil
}

func (s *Server) loadClients(ctx context.Context, to *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	customers, err := s.app.API.Customers.List(ctx, shopID, to.Query.Get(querySearch))
	if err != nil {
		return nil, err
	}
	t := table{
		Heading: "Clients",
		Columns: []string{"Name", "Email", "Appointments", "Spent"},
		Empty:   "No clients yet.",
	}
	for _, cu := range customers {
		t.Rows = append(t.Rows, row{
			Href:  s.href(navigation.RouteClientDetails, map[string]string{"clientId": cu.ID}),
			Cells: []string{cu.Name, cu.Email, strconv.Itoa(cu.TotalAppointments), money(cu.TotalSpent)},
		})
	}
	return t, nil
}

func (s *Server) loadClientDetails(ctx context.Context, to *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	clientID := to.Params["clientId"]
	cu, err := s.app.API.Customers.Get(ctx, shopID, clientID)
	if err != nil {
		return nil, err
	}
	history, err := s.app.API.Customers.History(ctx, shopID, clientID)
	if err != nil {
		return nil, err
	}

	visits := table{Heading: "History", Columns: []string{"When", "Service", "Price", "Status"}, Empty: "No visits yet."}
	for _, h := range history {
		visits.Rows = append(visits.Rows, row{Cells: []string{when(h.StartTime), h.ServiceName, money(h.ServicePrice), statusLabel(h.StatusID)}})
	}
	return detail{
		Heading: cu.Name,
		Fields: []field{
			{"Email", cu.Email},
			{"Phone", cu.Phone},
			{"Appointments", strconv.Itoa(cu.TotalAppointments)},
			{"Spent", money(cu.TotalSpent)},
			{"Notes", cu.Notes},
		},
		Tables: []table{visits},
		Links:  []link{{Label: "Back to clients", Href: s.href(navigation.RouteClientsList, nil)}},
	}, nil
}

func (s *Server) loadEditBarbershop(ctx context.Context, _ *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	shop, err := s.app.API.Barbershops.Show(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return shopDetail(shop), nil
}

// loadOnboarding shows what is still missing before the shop can take bookings.
func (s *Server) loadOnboarding(ctx context.Context, _ *navigation.Resolved) (any, error) {
	shopID, err := s.shopID()
	if err != nil {
		return nil, err
	}
	shop, err := s.app.API.Barbershops.Show(ctx, shopID)
	if err != nil {
		return nil, err
	}
	services, err := s.app.API.Services.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	barbers, err := s.app.API.Barbers.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	hours, err := s.app.API.WorkingHours.List(ctx, shopID)
	if err != nil {
		return nil, err
	}

	d := shopDetail(shop)
	d.Heading = "Welcome, " + shop.Name
	d.Fields = append(d.Fields,
		field{"Services", strconv.Itoa(len(services))},
		field{"Team members", strconv.Itoa(len(barbers))},
		field{"Opening days", strconv.Itoa(len(hours))},
	)
	d.Links = []link{
		{Label: "Edit barbershop", Href: s.href(navigation.RouteEditBarbershop, nil)},
		{Label: "Add a service", Href: s.href(navigation.RouteAddService, nil)},
		{Label: "Add a team member", Href: s.href(navigation.RouteAddTeamMember, nil)},
		{Label: "Set working hours", Href: s.href(navigation.RouteWorkingHours, nil)},
		{Label: "Go to dashboard", Href: s.href(navigation.RouteDashboard, nil)},
	}
	return d, nil
}

func shopDetail(shop *apiclient.Barbershop) detail {
	return detail{
		Heading: shop.Name,
		Fields: []field{
			{"Company code", shop.CompanyCode},
			{"Phone", shop.Phone},
			{"Address", formatAddress(shop.Address)},
			{"About", shop.Biography},
			{"Requires prepayment", yesNo(shop.RequiresPrepayment)},
			{"Rating", rating(shop.RatingAverage, shop.RatingCount)},
		},
	}
}

func today(now time.Time) string {
	return now.Format(time.DateOnly)
}

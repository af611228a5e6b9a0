package server

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/navigation"
)

func (s *Server) shopsTable(heading string, shops []apiclient.Barbershop, empty string) table {
	t := table{Heading: heading, Columns: []string{"Name", "Address", "Rating"}, Empty: empty}
	for _, b := range shops {
		t.Rows = append(t.Rows, row{
			Href:  s.href(navigation.RouteBarbershopDetails, map[string]string{"id": b.ID}),
			Cells: []string{b.Name, formatAddress(b.Address), rating(b.RatingAverage, b.RatingCount)},
		})
	}
	return t
}

func (s *Server) loadBarbershops(ctx context.Context, to *navigation.Resolved) (any, error) {
	shops, err := s.app.API.Barbershops.List(ctx, apiclient.BarbershopFilters{Search: to.Query.Get(querySearch)})
	if err != nil {
		return nil, err
	}
	return s.shopsTable("Barbershops", shops, "No barbershops found."), nil
}

func (s *Server) loadBarbershopDetails(ctx context.Context, to *navigation.Resolved) (any, error) {
	id := to.Params["id"]
	shop, err := s.app.API.Barbershops.Show(ctx, id)
	if err != nil {
		return nil, err
	}
	services, err := s.app.API.Services.List(ctx, id)
	if err != nil {
		return nil, err
	}
	barbers, err := s.app.API.Barbers.List(ctx, id)
	if err != nil {
		return nil, err
	}
	favorite, err := s.app.API.Favorites.Check(ctx, id)
	if err != nil {
		return nil, err
	}

	d := shopDetail(shop)
	d.Fields = append(d.Fields, field{"Favorite", yesNo(favorite)})

	menu := table{Heading: "Services", Columns: []string{"Name", "Price", "Duration"}, Empty: "No services."}
	for _, svc := range services {
		if svc.IsActive {
			menu.Rows = append(menu.Rows, row{Cells: []string{svc.Name, money(svc.Price), fmt.Sprintf("%d min", svc.DurationMinutes)}})
		}
	}
	team := table{Heading: "Team", Columns: []string{"Name", "Specialties", "Rating"}, Empty: "No barbers."}
	for _, b := range barbers {
		if b.IsActive {
			team.Rows = append(team.Rows, row{Cells: []string{b.Name, utils.Value(b.Specialties), rating(b.RatingAverage, b.RatingCount)}})
		}
	}
	d.Tables = []table{menu, team}
	d.Links = []link{
		{Label: "Book", Href: s.href(navigation.RouteBarbershopBooking, map[string]string{"id": id})},
		{Label: "Back", Href: s.href(navigation.RouteClientDashboard, nil)},
	}
	return d, nil
}

// loadBooking lists one barber's slots for a day. Day and barber come from the
// query and default to today and the first active barber.
func (s *Server) loadBooking(ctx context.Context, to *navigation.Resolved) (any, error) {
	id := to.Params["id"]
	barbers, err := s.app.API.Barbers.List(ctx, id)
	if err != nil {
		return nil, err
	}
	date := to.Query.Get(queryDate)
	if date == "" {
		date = today(s.now())
	}

	t := table{
		Columns: []string{"Starts", "Ends", "Available"},
		Empty:   "No free slots on this day.",
	}
	barberID := to.Query.Get(queryBarber)
	for _, b := range barbers {
		if !b.IsActive {
			continue
		}
		if barberID == "" {
			barberID = b.ID
		}
		t.Links = append(t.Links, link{
			Label:  b.Name,
			Href:   s.href(navigation.RouteBarbershopBooking, map[string]string{"id": id}) + "?" + bookingQuery(date, b.ID),
			Active: b.ID == barberID,
		})
	}
	t.Heading = "Available times on " + date
	if barberID == "" {
		t.Empty = "This barbershop has no barbers yet."
		return t, nil
	}

	slots, err := s.app.API.Barbershops.AvailableSlots(ctx, id, date, barberID)
	if err != nil {
		return nil, err
	}
	for _, slot := range slots {
		t.Rows = append(t.Rows, row{Cells: []string{when(slot.StartTime), when(slot.EndTime), yesNo(slot.Available)}})
	}
	return t, nil
}

func bookingQuery(date, barberID string) string {
	return url.Values{queryDate: {date}, queryBarber: {barberID}}.Encode()
}

func (s *Server) loadClientAppointments(ctx context.Context, _ *navigation.Resolved) (any, error) {
	stats, err := s.app.API.Profile.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return detail{
		Heading: "My appointments",
		Fields: []field{
			{"Appointments", strconv.Itoa(stats.TotalAppointments)},
			{"Spent", money(stats.TotalSpent)},
		},
		Links: []link{{Label: "Find a barbershop", Href: s.href(navigation.RouteClientDashboard, nil)}},
	}, nil
}

func (s *Server) loadFavorites(ctx context.Context, _ *navigation.Resolved) (any, error) {
	shops, err := s.app.API.Favorites.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.shopsTable("Favorites", shops, "No favorites yet."), nil
}

func (s *Server) loadClientProfile(ctx context.Context, _ *navigation.Resolved) (any, error) {
	me, err := s.app.API.Profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.app.API.Profile.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return detail{
		Heading: me.Name,
		Fields: []field{
			{"Email", me.Email},
			{"Phone", me.Phone},
			{"Appointments", strconv.Itoa(stats.TotalAppointments)},
			{"Favorites", strconv.Itoa(stats.FavoriteCount)},
		},
	}, nil
}

package apiclient

import (
	"context"
	"time"

	"github.com/jrsteele09/go-barber-client/internal/utils"
)

// DashboardService summarises a barbershop's day. The API has no dashboard
// endpoint, so the figures are derived from the appointments list.
type DashboardService struct {
	c *Client
}

// TodayAppointments lists the appointments starting on the given day.
func (s *DashboardService) TodayAppointments(ctx context.Context, barbershopID string, day time.Time) ([]Appointment, error) {
	return s.c.Appointments.List(ctx, barbershopID, AppointmentFilters{Date: day.Format(time.DateOnly)})
}

// Stats counts today's non-cancelled appointments and the month's completed revenue.
func (s *DashboardService) Stats(ctx context.Context, barbershopID string, now time.Time) (*DashboardStats, error) {
	all, err := s.c.Appointments.List(ctx, barbershopID, AppointmentFilters{})
	if err != nil {
		return nil, err
	}
	shop, err := s.c.Barbershops.Show(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{RatingAverage: utils.Value(shop.RatingAverage)}
	today := now.Format(time.DateOnly)
	for _, a := range all {
		start, err := time.Parse(time.RFC3339, a.StartTime)
		if err != nil {
			continue
		}
		start = start.In(now.Location())
		if start.Format(time.DateOnly) == today && a.StatusID != StatusCancelled {
			stats.AppointmentsToday++
		}
		if a.StatusID == StatusCompleted && a.Service != nil &&
			start.Year() == now.Year() && start.Month() == now.Month() {
			stats.RevenueMonth += a.Service.Price
		}
	}
	return stats, nil
}

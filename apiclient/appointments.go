package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type AppointmentService struct {
	c *Client
}

func (s *AppointmentService) List(ctx context.Context, barbershopID string, f AppointmentFilters) ([]Appointment, error) {
	q := url.Values{}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.StatusID != 0 {
		q.Set("status_id", strconv.Itoa(f.StatusID))
	}
	if f.BarberID != "" {
		q.Set("barber_id", f.BarberID)
	}
	return getData[[]Appointment](ctx, s.c, shopPath(barbershopID, "appointments"), q)
}

func (s *AppointmentService) Get(ctx context.Context, barbershopID, appointmentID string) (*Appointment, error) {
	a, err := getData[Appointment](ctx, s.c, shopPath(barbershopID, "appointments", appointmentID), nil)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AppointmentService) Create(ctx context.Context, barbershopID string, in AppointmentInput) (*Appointment, error) {
	a, err := sendData[Appointment](ctx, s.c, http.MethodPost, shopPath(barbershopID, "appointments"), in)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AppointmentService) Update(ctx context.Context, barbershopID, appointmentID string, in AppointmentInput) (*Appointment, error) {
	a, err := sendData[Appointment](ctx, s.c, http.MethodPut, shopPath(barbershopID, "appointments", appointmentID), in)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, barbershopID, appointmentID string, statusID int) (*Appointment, error) {
	body := map[string]int{"status_id": statusID}
	a, err := sendData[Appointment](ctx, s.c, http.MethodPatch, shopPath(barbershopID, "appointments", appointmentID, "status"), body)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, barbershopID, appointmentID string) error {
	return s.c.do(ctx, http.MethodDelete, shopPath(barbershopID, "appointments", appointmentID), nil, nil, nil)
}

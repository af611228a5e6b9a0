package apiclient

import (
	"context"
	"net/http"
)

type BarberService struct {
	c *Client
}

func (s *BarberService) List(ctx context.Context, barbershopID string) ([]Barber, error) {
	return getData[[]Barber](ctx, s.c, shopPath(barbershopID, "barbers"), nil)
}

func (s *BarberService) Create(ctx context.Context, barbershopID string, in BarberInput) (*Barber, error) {
	b, err := sendData[Barber](ctx, s.c, http.MethodPost, shopPath(barbershopID, "barbers"), in)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BarberService) Update(ctx context.Context, barbershopID, barberID string, in BarberInput) (*Barber, error) {
	b, err := sendData[Barber](ctx, s.c, http.MethodPut, shopPath(barbershopID, "barbers", barberID), in)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BarberService) Delete(ctx context.Context, barbershopID, barberID string) error {
	return s.c.do(ctx, http.MethodDelete, shopPath(barbershopID, "barbers", barberID), nil, nil, nil)
}

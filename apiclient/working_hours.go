package apiclient

import (
	"context"
	"net/http"
)

// WorkingHourService manages a barbershop's weekly opening hours.
type WorkingHourService struct {
	c *Client
}

func (s *WorkingHourService) List(ctx context.Context, barbershopID string) ([]WorkingHour, error) {
	return getData[[]WorkingHour](ctx, s.c, shopPath(barbershopID, "business-hours"), nil)
}

func (s *WorkingHourService) Create(ctx context.Context, barbershopID string, in WorkingHourInput) (*WorkingHour, error) {
	wh, err := sendData[WorkingHour](ctx, s.c, http.MethodPost, shopPath(barbershopID, "business-hours"), in)
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (s *WorkingHourService) Update(ctx context.Context, barbershopID, workingHourID string, in WorkingHourInput) (*WorkingHour, error) {
	wh, err := sendData[WorkingHour](ctx, s.c, http.MethodPut, shopPath(barbershopID, "business-hours", workingHourID), in)
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (s *WorkingHourService) Delete(ctx context.Context, barbershopID, workingHourID string) error {
	return s.c.do(ctx, http.MethodDelete, shopPath(barbershopID, "business-hours", workingHourID), nil, nil, nil)
}

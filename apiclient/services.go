package apiclient

import (
	"context"
	"net/http"
)

// ServiceService manages the services a barbershop offers.
type ServiceService struct {
	c *Client
}

func (s *ServiceService) List(ctx context.Context, barbershopID string) ([]Service, error) {
	return getData[[]Service](ctx, s.c, shopPath(barbershopID, "services"), nil)
}

func (s *ServiceService) Get(ctx context.Context, barbershopID, serviceID string) (*Service, error) {
	svc, err := getData[Service](ctx, s.c, shopPath(barbershopID, "services", serviceID), nil)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *ServiceService) Create(ctx context.Context, barbershopID string, in ServiceInput) (*Service, error) {
	svc, err := sendData[Service](ctx, s.c, http.MethodPost, shopPath(barbershopID, "services"), in)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *ServiceService) Update(ctx context.Context, barbershopID, serviceID string, in ServiceInput) (*Service, error) {
	svc, err := sendData[Service](ctx, s.c, http.MethodPut, shopPath(barbershopID, "services", serviceID), in)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *ServiceService) Delete(ctx context.Context, barbershopID, serviceID string) error {
	return s.c.do(ctx, http.MethodDelete, shopPath(barbershopID, "services", serviceID), nil, nil, nil)
}

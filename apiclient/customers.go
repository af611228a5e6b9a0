package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// CustomerService reads a barbershop's clients.
type CustomerService struct {
	c *Client
}

func (s *CustomerService) List(ctx context.Context, barbershopID, search string) ([]Customer, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	return getData[[]Customer](ctx, s.c, shopPath(barbershopID, "clients"), q)
}

func (s *CustomerService) Get(ctx context.Context, barbershopID, clientID string) (*Customer, error) {
	cu, err := getData[Customer](ctx, s.c, shopPath(barbershopID, "clients", clientID), nil)
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

func (s *CustomerService) History(ctx context.Context, barbershopID, clientID string) ([]CustomerHistoryEntry, error) {
	return getData[[]CustomerHistoryEntry](ctx, s.c, shopPath(barbershopID, "clients", clientID, "appointments"), nil)
}

func (s *CustomerService) UpdateNotes(ctx context.Context, barbershopID, clientID, notes string) (*Customer, error) {
	body := map[string]string{"notes": notes}
	cu, err := sendData[Customer](ctx, s.c, http.MethodPatch, shopPath(barbershopID, "clients", clientID, "notes"), body)
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

type FavoriteService struct {
	c *Client
}

func (s *FavoriteService) List(ctx context.Context) ([]Barbershop, error) {
	return getData[[]Barbershop](ctx, s.c, "/client/favorites", nil)
}

func (s *FavoriteService) Add(ctx context.Context, barbershopID string) error {
	body := map[string]string{"barbershop_id": barbershopID}
	return s.c.do(ctx, http.MethodPost, "/client/favorites", nil, body, nil)
}

func (s *FavoriteService) Remove(ctx context.Context, barbershopID string) error {
	return s.c.do(ctx, http.MethodDelete, "/client/favorites/"+url.PathEscape(barbershopID), nil, nil, nil)
}

// Check reports whether the barbershop is one of the client's favorites.
func (s *FavoriteService) Check(ctx context.Context, barbershopID string) (bool, error) {
	var resp struct {
		IsFavorite bool `json:"is_favorite"`
	}
	err := s.c.do(ctx, http.MethodGet, "/client/favorites/"+url.PathEscape(barbershopID)+"/check", nil, nil, &resp)
	return resp.IsFavorite, err
}

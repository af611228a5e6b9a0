package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type BarbershopService struct {
	c *Client
}

func (s *BarbershopService) List(ctx context.Context, f BarbershopFilters) ([]Barbershop, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	setFloat(q, "latitude", f.Latitude)
	setFloat(q, "longitude", f.Longitude)
	setFloat(q, "radius", f.Radius)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return getData[[]Barbershop](ctx, s.c, "/barbershops", q)
}

func (s *BarbershopService) Search(ctx context.Context, query string, latitude, longitude *float64) ([]Barbershop, error) {
	q := url.Values{"query": {query}}
	setFloat(q, "latitude", latitude)
	setFloat(q, "longitude", longitude)
	return getData[[]Barbershop](ctx, s.c, "/barbershops/search", q)
}

func (s *BarbershopService) Show(ctx context.Context, id string) (*Barbershop, error) {
	b, err := getData[Barbershop](ctx, s.c, shopPath(id), nil)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// AvailableSlots lists bookable slots for one barber on a date (YYYY-MM-DD).
func (s *BarbershopService) AvailableSlots(ctx context.Context, barbershopID, date, barberID string) ([]Slot, error) {
	q := url.Values{"date": {date}, "barber_id": {barberID}}
	return getData[[]Slot](ctx, s.c, shopPath(barbershopID, "available-slots"), q)
}

func (s *BarbershopService) Update(ctx context.Context, id string, data UpdateBarbershop) (*Barbershop, error) {
	b, err := sendData[Barbershop](ctx, s.c, http.MethodPut, shopPath(id), data)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func setFloat(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-barber-client/users"
)

// ProfileService is the signed-in client's own profile.
type ProfileService struct {
	c *Client
}

func (s *ProfileService) Get(ctx context.Context) (*users.Profile, error) {
	p, err := getData[users.Profile](ctx, s.c, "/client/profile", nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) Update(ctx context.Context, in ProfileUpdate) (*users.Profile, error) {
	p, err := sendData[users.Profile](ctx, s.c, http.MethodPut, "/client/profile", in)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, in PasswordChange) error {
	return s.c.do(ctx, http.MethodPut, "/client/profile/password", nil, in, nil)
}

func (s *ProfileService) Stats(ctx context.Context) (*ProfileStats, error) {
	st, err := getData[ProfileStats](ctx, s.c, "/client/profile/stats", nil)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

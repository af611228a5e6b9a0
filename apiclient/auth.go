package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-barber-client/users"
)

type AuthService struct {
	c *Client
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.c.do(ctx, http.MethodPost, "/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) RegisterClient(ctx context.Context, data Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.c.do(ctx, http.MethodPost, "/register/client", nil, data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) RegisterOwner(ctx context.Context, data Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.c.do(ctx, http.MethodPost, "/register/owner", nil, data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the token server-side. It does not touch the local session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}

// Me returns the profile of the token's owner.
func (s *AuthService) Me(ctx context.Context) (*users.Profile, error) {
	p, err := getData[users.Profile](ctx, s.c, "/me", nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

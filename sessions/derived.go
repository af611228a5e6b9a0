package sessions

import "github.com/jrsteele09/go-barber-client/users"

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the authenticated profile, or nil.
func (s *Store) User() *users.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Role is the authenticated user's role as the backend sent it.
func (s *Store) Role() users.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return users.RoleNone
	}
	return s.user.Role
}

func (s *Store) SelectedRole() users.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedRole
}

// IsAuthenticated is true exactly when a token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) IsOwner() bool {
	return s.Role() == users.RoleOwner
}

func (s *Store) IsClient() bool {
	return s.Role() == users.RoleClient
}

// OrganizationID is the owned barbershop's id, derived from the profile on every read.
func (s *Store) OrganizationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.OrganizationID()
}

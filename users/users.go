package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Role is the account role shared with the backend.
type Role string

const (
	RoleNone   Role = ""
	RoleOwner  Role = "OWNER"  // Barbershop operator (provider)
	RoleClient Role = "CLIENT" // End customer
)

// ParseRole maps a raw value to a known role. Anything unrecognised is RoleNone.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner
	case RoleClient:
		return RoleClient
	}
	return RoleNone
}

// Known reports whether the role is one of the two backend roles.
func (r Role) Known() bool {
	return r == RoleOwner || r == RoleClient
}

func (r Role) String() string {
	return string(r)
}

// OrganizationID accepts both JSON strings and JSON numbers, the backend sends either.
type OrganizationID string

func (id *OrganizationID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OrganizationID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("organization id: %w", err)
	}
	*id = OrganizationID(n.String())
	return nil
}

// Organization is the barbershop an OWNER account operates.
type Organization struct {
	ID   OrganizationID `json:"id"`
	Name string         `json:"name"`
}

// Profile is the authenticated user's record as returned by the API.
type Profile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         Role          `json:"role,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Organization *Organization `json:"barbershop"`
}

// Clone returns a deep copy so callers can't mutate shared session state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.Organization != nil {
		org := *p.Organization
		c.Organization = &org
	}
	return &c
}

// OrganizationID is only meaningful for owners.
func (p *Profile) OrganizationID() string {
	if p == nil || p.Role != RoleOwner || p.Organization == nil {
		return ""
	}
	return string(p.Organization.ID)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

package mockapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/users"
)

// Demo accounts created by Seed.
const (
	DemoOwnerEmail  = "owner@barber.test"
	DemoClientEmail = "client@barber.test"
	DemoPassword    = "Password123"
)

// CreateAccount registers an account directly. Owners get an empty barbershop.
func (s *Server) CreateAccount(role users.Role, in apiclient.Registration) (*users.Account, error) {
	hash, err := users.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("[mockapi CreateAccount] hash: %w", err)
	}
	account := &users.Account{
		Profile: users.Profile{
			ID:    uuid.New().String(),
			Name:  in.Name,
			Email: in.Email,
			Role:  role,
			Phone: in.Phone,
		},
		PasswordHash: hash,
	}

	var shopID string
	if role == users.RoleOwner {
		name := in.BarbershopName
		if name == "" {
			name = in.Name + "'s Barbershop"
		}
		shop := apiclient.Barbershop{ID: uuid.New().String(), OwnerID: account.ID, Name: name, Phone: in.Phone}
		s.data.mu.Lock()
		s.data.shops[shop.ID] = shop
		s.data.mu.Unlock()
		shopID = shop.ID
		account.Organization = &users.Organization{ID: users.OrganizationID(shop.ID), Name: shop.Name}
	}

	if err := s.accounts.Upsert(account); err != nil {
		if shopID != "" {
			s.data.mu.Lock()
			delete(s.data.shops, shopID)
			s.data.mu.Unlock()
		}
		return nil, fmt.Errorf("[mockapi CreateAccount] upsert: %w", err)
	}
	return account, nil
}

// Seed creates a demo owner with a staffed barbershop and a demo client.
func (s *Server) Seed() (owner, client *users.Account, err error) {
	owner, err = s.CreateAccount(users.RoleOwner, apiclient.Registration{
		Name:           "Demo Owner",
		Email:          DemoOwnerEmail,
		Password:       DemoPassword,
		Phone:          "+55 11 99999-0000",
		BarbershopName: "Fade Factory",
	})
	if err != nil {
		return nil, nil, err
	}
	client, err = s.CreateAccount(users.RoleClient, apiclient.Registration{
		Name:     "Demo Client",
		Email:    DemoClientEmail,
		Password: DemoPassword,
	})
	if err != nil {
		return nil, nil, err
	}

	shopID := owner.OrganizationID()
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	for _, svc := range []apiclient.Service{
		{Name: "Haircut", Price: 45, DurationMinutes: 30},
		{Name: "Beard", Price: 30, DurationMinutes: 20},
		{Name: "Haircut + Beard", Price: 70, DurationMinutes: 50},
	} {
		svc.ID, svc.BarbershopID, svc.IsActive = uuid.New().String(), shopID, true
		s.data.services[svc.ID] = svc
	}
	for i, name := range []string{"João", "Pedro"} {
		b := apiclient.Barber{ID: uuid.New().String(), BarbershopID: shopID, Name: name, IsActive: true, Order: i}
		s.data.barbers[b.ID] = b
	}
	for day := int(time.Monday); day <= int(time.Saturday); day++ {
		wh := apiclient.WorkingHour{
			ID:           uuid.New().String(),
			BarbershopID: shopID,
			DayOfWeek:    day,
			IsActive:     true,
			StartTime:    "09:00:00",
			EndTime:      "18:00:00",
		}
		s.data.hours[wh.ID] = wh
	}
	return owner, client, nil
}

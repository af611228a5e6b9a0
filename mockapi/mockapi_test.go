package mockapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/mockapi"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testFixture struct {
	api    *mockapi.Server
	srv    *httptest.Server
	owner  *users.Account
	client *users.Account
}

func setupTestFixture(t *testing.T, opts ...mockapi.Option) *testFixture {
	t.Helper()
	api := mockapi.New(testSecret, time.Hour, opts...)
	owner, client, err := api.Seed()
	require.NoError(t, err)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return &testFixture{api: api, srv: srv, owner: owner, client: client}
}

// call sends a JSON request and decodes the response body into out when given.
func (f *testFixture) call(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.srv.URL+mockapi.Prefix+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (f *testFixture) login(t *testing.T, email string) apiclient.AuthResponse {
	t.Helper()
	var auth apiclient.AuthResponse
	status := f.call(t, http.MethodPost, "/login", "", apiclient.Credentials{Email: email, Password: mockapi.DemoPassword}, &auth)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, auth.Token)
	return auth
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func TestLogin(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("owner gets profile with barbershop", func(t *testing.T) {
		auth := f.login(t, mockapi.DemoOwnerEmail)
		require.Equal(t, users.RoleOwner, auth.User.Role)
		require.NotNil(t, auth.User.Organization)
		require.Equal(t, f.owner.OrganizationID(), string(auth.User.Organization.ID))
	})

	t.Run("wrong password", func(t *testing.T) {
		var body errorBody
		status := f.call(t, http.MethodPost, "/login", "", apiclient.Credentials{Email: mockapi.DemoClientEmail, Password: "nope"}, &body)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "Invalid credentials.", body.Message)
	})
}

func TestAuthenticationRequired(t *testing.T) {
	f := setupTestFixture(t)

	for name, token := range map[string]string{
		"missing":  "",
		"garbage":  "not-a-jwt",
		"tampered": f.login(t, mockapi.DemoClientEmail).Token + "x",
	} {
		t.Run(name, func(t *testing.T) {
			var body errorBody
			status := f.call(t, http.MethodGet, "/me", token, nil, &body)
			require.Equal(t, http.StatusUnauthorized, status)
			require.Equal(t, "Unauthenticated.", body.Message)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := setupTestFixture(t)
	token := f.login(t, mockapi.DemoClientEmail).Token

	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/me", token, nil, nil))
	require.Equal(t, http.StatusOK, f.call(t, http.MethodPost, "/logout", token, nil, nil))
	require.Equal(t, http.StatusUnauthorized, f.call(t, http.MethodGet, "/me", token, nil, nil))
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := setupTestFixture(t, mockapi.WithClock(func() time.Time { return now }))
	token := f.login(t, mockapi.DemoClientEmail).Token

	now = now.Add(2 * time.Hour)
	require.Equal(t, http.StatusUnauthorized, f.call(t, http.MethodGet, "/me", token, nil, nil))
}

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("owner gets a barbershop", func(t *testing.T) {
		var auth apiclient.AuthResponse
		status := f.call(t, http.MethodPost, "/register/owner", "", apiclient.Registration{
			Name:                 "New Owner",
			Email:                "new-owner@barber.test",
			Password:             "Password123",
			PasswordConfirmation: "Password123",
			BarbershopName:       "Clean Cuts",
		}, &auth)
		require.Equal(t, http.StatusCreated, status)
		require.Equal(t, users.RoleOwner, auth.User.Role)
		require.Equal(t, "Clean Cuts", auth.User.Organization.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		var body errorBody
		status := f.call(t, http.MethodPost, "/register/client", "", apiclient.Registration{
			Name:                 "Again",
			Email:                mockapi.DemoClientEmail,
			Password:             "Password123",
			PasswordConfirmation: "Password123",
		}, &body)
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, body.Errors, "email")
	})

	t.Run("weak password", func(t *testing.T) {
		status := f.call(t, http.MethodPost, "/register/client", "", apiclient.Registration{
			Name:                 "Weak",
			Email:                "weak@barber.test",
			Password:             "short",
			PasswordConfirmation: "short",
		}, nil)
		require.Equal(t, http.StatusUnprocessableEntity, status)
	})
}

func TestOwnerOnlyRoutes(t *testing.T) {
	f := setupTestFixture(t)
	shopID := f.owner.OrganizationID()
	clientToken := f.login(t, mockapi.DemoClientEmail).Token
	ownerToken := f.login(t, mockapi.DemoOwnerEmail).Token

	require.Equal(t, http.StatusForbidden, f.call(t, http.MethodGet, "/barbershops/"+shopID+"/appointments", clientToken, nil, nil))
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/barbershops/"+shopID+"/appointments", ownerToken, nil, nil))
	require.Equal(t, http.StatusForbidden, f.call(t, http.MethodGet, "/barbershops/other/appointments", ownerToken, nil, nil))
	require.Equal(t, http.StatusForbidden, f.call(t, http.MethodGet, "/client/favorites", ownerToken, nil, nil))
}

func TestBookingFlow(t *testing.T) {
	f := setupTestFixture(t)
	shopID := f.owner.OrganizationID()
	clientToken := f.login(t, mockapi.DemoClientEmail).Token
	ownerToken := f.login(t, mockapi.DemoOwnerEmail).Token

	var barbers envelope[[]apiclient.Barber]
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/barbershops/"+shopID+"/barbers", clientToken, nil, &barbers))
	require.Len(t, barbers.Data, 2)
	var services envelope[[]apiclient.Service]
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/barbershops/"+shopID+"/services", clientToken, nil, &services))
	require.Len(t, services.Data, 3)

	barberID := barbers.Data[0].ID
	haircut := services.Data[0]
	for _, svc := range services.Data {
		if svc.Name == "Haircut" {
			haircut = svc
		}
	}

	// 2026-03-02 is a Monday: 09:00 to 18:00 gives 18 half-hour slots.
	slotsPath := "/barbershops/" + shopID + "/available-slots?date=2026-03-02&barber_id=" + barberID
	var slots envelope[[]apiclient.Slot]
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, slotsPath, clientToken, nil, &slots))
	require.Len(t, slots.Data, 18)
	require.True(t, slots.Data[0].Available)

	var booked envelope[apiclient.Appointment]
	status := f.call(t, http.MethodPost, "/barbershops/"+shopID+"/appointments", clientToken, apiclient.AppointmentInput{
		ClientID:  "someone-else",
		BarberID:  barberID,
		ServiceID: haircut.ID,
		StartTime: slots.Data[0].StartTime,
	}, &booked)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, f.client.ID, booked.Data.ClientID)
	require.Equal(t, apiclient.StatusPending, booked.Data.StatusID)

	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, slotsPath, clientToken, nil, &slots))
	require.False(t, slots.Data[0].Available)
	require.True(t, slots.Data[1].Available)

	t.Run("double booking is rejected", func(t *testing.T) {
		status := f.call(t, http.MethodPost, "/barbershops/"+shopID+"/appointments", clientToken, apiclient.AppointmentInput{
			BarberID:  barberID,
			ServiceID: haircut.ID,
			StartTime: slots.Data[0].StartTime,
		}, nil)
		require.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("owner completes and sees the customer", func(t *testing.T) {
		var updated envelope[apiclient.Appointment]
		status := f.call(t, http.MethodPatch, "/barbershops/"+shopID+"/appointments/"+booked.Data.ID+"/status", ownerToken,
			map[string]int{"status_id": apiclient.StatusCompleted}, &updated)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, apiclient.StatusCompleted, updated.Data.StatusID)

		var customers envelope[[]apiclient.Customer]
		require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/barbershops/"+shopID+"/clients", ownerToken, nil, &customers))
		require.Len(t, customers.Data, 1)
		require.Equal(t, f.client.ID, customers.Data[0].ID)
		require.Equal(t, 1, customers.Data[0].TotalAppointments)
		require.InDelta(t, haircut.Price, customers.Data[0].TotalSpent, 0.001)
	})

	t.Run("client stats", func(t *testing.T) {
		var stats envelope[apiclient.ProfileStats]
		require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/client/profile/stats", clientToken, nil, &stats))
		require.Equal(t, 1, stats.Data.TotalAppointments)
	})
}

func TestFavorites(t *testing.T) {
	f := setupTestFixture(t)
	shopID := f.owner.OrganizationID()
	token := f.login(t, mockapi.DemoClientEmail).Token

	var check map[string]bool
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/client/favorites/"+shopID+"/check", token, nil, &check))
	require.False(t, check["is_favorite"])

	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/client/favorites", token, map[string]string{"barbershop_id": shopID}, nil))

	var favs envelope[[]apiclient.Barbershop]
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/client/favorites", token, nil, &favs))
	require.Len(t, favs.Data, 1)
	require.Equal(t, shopID, favs.Data[0].ID)

	require.Equal(t, http.StatusNoContent, f.call(t, http.MethodDelete, "/client/favorites/"+shopID, token, nil, nil))
	require.Equal(t, http.StatusNotFound, f.call(t, http.MethodDelete, "/client/favorites/"+shopID, token, nil, nil))
}

func TestChangePassword(t *testing.T) {
	f := setupTestFixture(t)
	token := f.login(t, mockapi.DemoClientEmail).Token

	status := f.call(t, http.MethodPut, "/client/profile/password", token, apiclient.PasswordChange{
		CurrentPassword:         "wrong",
		NewPassword:             "NewPassword1",
		NewPasswordConfirmation: "NewPassword1",
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status = f.call(t, http.MethodPut, "/client/profile/password", token, apiclient.PasswordChange{
		CurrentPassword:         mockapi.DemoPassword,
		NewPassword:             "NewPassword1",
		NewPasswordConfirmation: "NewPassword1",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	status = f.call(t, http.MethodPost, "/login", "", apiclient.Credentials{Email: mockapi.DemoClientEmail, Password: "NewPassword1"}, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestEmailUniqueness(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("simultaneous sign-ups with one email", func(t *testing.T) {
		body, err := json.Marshal(apiclient.Registration{
			Name:                 "Racer",
			Email:                "racer@barber.test",
			Password:             "Password123",
			PasswordConfirmation: "Password123",
		})
		require.NoError(t, err)

		const attempts = 6
		statuses := make(chan int, attempts)
		var wg sync.WaitGroup
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, err := http.Post(f.srv.URL+mockapi.Prefix+"/register/client", "application/json", bytes.NewReader(body))
				if err != nil {
					statuses <- 0
					return
				}
				resp.Body.Close()
				statuses <- resp.StatusCode
			}()
		}
		wg.Wait()
		close(statuses)

		counts := map[int]int{}
		for status := range statuses {
			counts[status]++
		}
		require.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusUnprocessableEntity: attempts - 1}, counts)
	})

	t.Run("profile email already in use", func(t *testing.T) {
		token := f.login(t, mockapi.DemoClientEmail).Token
		var body errorBody
		status := f.call(t, http.MethodPut, "/client/profile", token, apiclient.ProfileUpdate{Email: utils.Ptr(mockapi.DemoOwnerEmail)}, &body)
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Equal(t, []string{"The email has already been taken."}, body.Errors["email"])

		// Still signed in under the old address.
		f.login(t, mockapi.DemoClientEmail)
	})
}

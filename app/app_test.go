package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/app"
	"github.com/jrsteele09/go-barber-client/internal/config"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/mockapi"
	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/stretchr/testify/require"
)

// authRecorder records the Authorization header of every outgoing request.
type authRecorder struct {
	mu   sync.Mutex
	seen []string
	base http.RoundTripper
}

func (r *authRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	r.seen = append(r.seen, req.Header.Get("Authorization"))
	r.mu.Unlock()
	return r.base.RoundTrip(req)
}

func (r *authRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[len(r.seen)-1]
}

type testFixture struct {
	api     *mockapi.Server
	cfg     config.Config
	headers *authRecorder
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	api := mockapi.New("test-secret", time.Hour)
	_, _, err := api.Seed()
	require.NoError(t, err)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL+mockapi.Prefix+"/")
	t.Setenv("FOLDER", t.TempDir())
	cfg, err := config.New()
	require.NoError(t, err)
	return &testFixture{api: api, cfg: cfg, headers: &authRecorder{base: http.DefaultTransport}}
}

func (f *testFixture) newApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(f.cfg, app.WithAPIOptions(apiclient.WithTransport(f.headers)))
	require.NoError(t, err)
	return a
}

func TestLogin_LandsOnRoleHome(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		a := f.newApp(t)
		to, err := a.Login(ctx, mockapi.DemoOwnerEmail, mockapi.DemoPassword, "")
		require.NoError(t, err)
		require.Equal(t, navigation.RouteDashboard, to.Name)
		require.True(t, a.Session.IsOwner())
		require.NotEmpty(t, a.Session.OrganizationID())
		require.NoError(t, a.Logout(ctx))
	})

	t.Run("client honours a local redirect", func(t *testing.T) {
		a := f.newApp(t)
		to, err := a.Login(ctx, mockapi.DemoClientEmail, mockapi.DemoPassword, "/client/favorites")
		require.NoError(t, err)
		require.Equal(t, navigation.RouteClientFavorites, to.Name)
		require.NoError(t, a.Logout(ctx))
	})

	t.Run("external redirect is ignored", func(t *testing.T) {
		a := f.newApp(t)
		to, err := a.Login(ctx, mockapi.DemoClientEmail, mockapi.DemoPassword, "//evil.example/x")
		require.NoError(t, err)
		require.Equal(t, navigation.RouteClientDashboard, to.Name)
		require.NoError(t, a.Logout(ctx))
	})

	t.Run("bad password", func(t *testing.T) {
		a := f.newApp(t)
		_, err := a.Login(ctx, mockapi.DemoClientEmail, "wrong", "")
		require.True(t, errors.Is(err, errors.ErrInvalidCredentials))
		require.False(t, a.Session.IsAuthenticated())
		require.False(t, a.SignedOut())
	})
}

func TestCredentialFollowsSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	a := f.newApp(t)

	_, err := a.Login(ctx, mockapi.DemoClientEmail, mockapi.DemoPassword, "")
	require.NoError(t, err)
	require.Equal(t, a.Session.Token(), a.API.AuthToken())

	_, err = a.API.Auth.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Bearer "+a.Session.Token(), f.headers.last())

	require.NoError(t, a.Logout(ctx))
	require.Empty(t, a.API.AuthToken())
	_, _ = a.API.Barbershops.List(ctx, apiclient.BarbershopFilters{})
	require.Empty(t, f.headers.last())
}

func TestRestartRestoresCredential(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	first := f.newApp(t)
	_, err := first.Login(ctx, mockapi.DemoOwnerEmail, mockapi.DemoPassword, "")
	require.NoError(t, err)
	token := first.Session.Token()

	second := f.newApp(t)
	require.True(t, second.Session.IsAuthenticated())
	require.Equal(t, token, second.API.AuthToken())

	me, err := second.API.Auth.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, users.RoleOwner, me.Role)
	require.Equal(t, "Bearer "+token, f.headers.last())
}

func TestServerRejectionEndsSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	a := f.newApp(t)

	_, err := a.Login(ctx, mockapi.DemoOwnerEmail, mockapi.DemoPassword, "")
	require.NoError(t, err)

	var navigations []string
	a.Navigator.AfterEach(func(to, _ *navigation.Resolved) { navigations = append(navigations, to.Name) })

	// Revoke the token behind the client's back.
	other := f.newApp(t)
	require.NoError(t, other.Logout(ctx))

	_, err = a.API.Auth.Me(ctx)
	require.True(t, apiclient.IsUnauthenticated(err))
	require.False(t, a.Session.IsAuthenticated())
	require.Empty(t, a.API.AuthToken())
	require.Equal(t, navigation.RouteLogin, a.Navigator.Current().Name)
	require.Equal(t, []string{navigation.RouteLogin}, navigations)
	require.True(t, a.SignedOut())
	require.False(t, a.SignedOut())

	t.Run("a second rejection does not navigate again", func(t *testing.T) {
		_, err := a.API.Barbershops.List(ctx, apiclient.BarbershopFilters{})
		require.True(t, apiclient.IsUnauthenticated(err))
		require.Len(t, navigations, 1)
		require.False(t, a.SignedOut())
	})

	t.Run("protected routes now go to login", func(t *testing.T) {
		to, err := a.Navigator.Push(navigation.Location{Path: "/provider/app/services"})
		require.NoError(t, err)
		require.Equal(t, navigation.RouteLogin, to.Name)
		require.Equal(t, "/provider/app/services", to.Query.Get(navigation.QueryRedirect))
	})
}

func TestConcurrentRejectionsNavigateOnce(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	a := f.newApp(t)

	_, err := a.Login(ctx, mockapi.DemoClientEmail, mockapi.DemoPassword, "")
	require.NoError(t, err)

	var (
		mu          sync.Mutex
		navigations []string
	)
	a.Navigator.AfterEach(func(to, _ *navigation.Resolved) {
		mu.Lock()
		navigations = append(navigations, to.Name)
		mu.Unlock()
	})

	other := f.newApp(t)
	require.NoError(t, other.Logout(ctx))

	const requests = 8
	var wg sync.WaitGroup
	errs := make(chan error, requests)
	for range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.API.Favorites.List(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.True(t, apiclient.IsUnauthenticated(err))
	}
	require.False(t, a.Session.IsAuthenticated())
	require.Equal(t, []string{navigation.RouteLogin}, navigations)
	require.True(t, a.SignedOut())
}

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	a := f.newApp(t)

	to, err := a.Register(ctx, users.RoleOwner, apiclient.Registration{
		Name:                 "Owner Two",
		Email:                "owner2@barber.test",
		Password:             "Password123",
		PasswordConfirmation: "Password123",
		BarbershopName:       "Second Shop",
	})
	require.NoError(t, err)
	require.Equal(t, navigation.RouteProviderOnboarding, to.Name)
	require.True(t, a.Session.IsOwner())

	_, err = a.Register(ctx, users.RoleNone, apiclient.Registration{})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

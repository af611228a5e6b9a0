package navigation_test

import (
	"testing"

	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/stretchr/testify/require"
)

// fakeSession is a fixed session state.
type fakeSession struct {
	authenticated bool
	role          users.Role
}

func (f fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f fakeSession) Role() users.Role      { return f.role }

var (
	anonymous = fakeSession{}
	owner     = fakeSession{authenticated: true, role: users.RoleOwner}
	client    = fakeSession{authenticated: true, role: users.RoleClient}
	stranger  = fakeSession{authenticated: true, role: users.Role("ADMIN")}
)

func check(t *testing.T, s navigation.SessionState, path string) navigation.Decision {
	t.Helper()
	to, err := newRouter(t).Resolve(navigation.Location{Path: path})
	require.NoError(t, err)
	return navigation.NewGuard(s).Check(to, nil)
}

func TestGuard_Check(t *testing.T) {
	tests := []struct {
		name     string
		session  fakeSession
		path     string
		allowed  bool
		target   string
		redirect string
	}{
		// Pre-auth routes with a session go home.
		{name: "owner on login", session: owner, path: "/login", target: navigation.RouteDashboard},
		{name: "owner on account type", session: owner, path: "/", target: navigation.RouteDashboard},
		{name: "client on provider register", session: client, path: "/provider/register", target: navigation.RouteClientDashboard},
		{name: "client on client register", session: client, path: "/client/register", allowed: true},
		{name: "unknown role on login falls through", session: stranger, path: "/login", allowed: true},

		// Public routes.
		{name: "anonymous on login", session: anonymous, path: "/login", allowed: true},
		{name: "anonymous on account type", session: anonymous, path: "/", allowed: true},

		// Protected routes.
		{
			name:     "anonymous on dashboard",
			session:  anonymous,
			path:     "/provider/app/dashboard",
			target:   navigation.RouteLogin,
			redirect: "/provider/app/dashboard",
		},
		{
			name:     "anonymous keeps the full requested path",
			session:  anonymous,
			path:     "/client/barbershop/9/booking?date=2026-03-01&barber=2",
			target:   navigation.RouteLogin,
			redirect: "/client/barbershop/9/booking?date=2026-03-01&barber=2",
		},
		{name: "owner on owner route", session: owner, path: "/provider/app/services", allowed: true},
		{name: "owner on onboarding", session: owner, path: "/provider/onboarding", allowed: true},
		{name: "client on client route", session: client, path: "/client/favorites", allowed: true},
		{name: "client on owner route", session: client, path: "/provider/app/services", target: navigation.RouteClientDashboard},
		{name: "owner on client route", session: owner, path: "/client/profile", target: navigation.RouteDashboard},
		{name: "unknown role on owner route", session: stranger, path: "/provider/app/dashboard", target: navigation.RouteAccountType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := check(t, tt.session, tt.path)
			if tt.allowed {
				require.True(t, d.Allowed(), d.Reason)
				return
			}
			require.Equal(t, navigation.DecisionRedirect, d.Kind)
			require.Equal(t, tt.target, d.Target.Name)
			require.Equal(t, tt.redirect, d.Target.Query.Get(navigation.QueryRedirect))
		})
	}
}

func TestGuard_AuthenticatedWithoutRoleRequirement(t *testing.T) {
	r, err := navigation.NewRouter([]navigation.Route{
		{Name: "Settings", Path: "/settings", Meta: navigation.Meta{RequiresAuth: true}},
	})
	require.NoError(t, err)
	to, err := r.Resolve(navigation.Location{Name: "Settings"})
	require.NoError(t, err)

	require.True(t, navigation.NewGuard(stranger).Check(to, nil).Allowed())
	require.True(t, navigation.NewGuard(client).Check(to, nil).Allowed())
	require.False(t, navigation.NewGuard(anonymous).Check(to, nil).Allowed())
}

func TestHomeFor(t *testing.T) {
	require.Equal(t, navigation.RouteDashboard, navigation.HomeFor(users.RoleOwner))
	require.Equal(t, navigation.RouteClientDashboard, navigation.HomeFor(users.RoleClient))
	require.Empty(t, navigation.HomeFor(users.RoleNone))
	require.Empty(t, navigation.HomeFor(users.Role("ADMIN")))
}

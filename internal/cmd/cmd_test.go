package cmd_test

import (
	"bytes"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-barber-client/internal/cmd"
	"github.com/jrsteele09/go-barber-client/mockapi"
	"github.com/stretchr/testify/require"
)

func setupTestAPI(t *testing.T, opts ...mockapi.Option) {
	t.Helper()
	api := mockapi.New("test-secret", time.Hour, opts...)
	_, _, err := api.Seed()
	require.NoError(t, err)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL+mockapi.Prefix+"/")
	t.Setenv("FOLDER", t.TempDir())
	t.Setenv("ENV", "TEST")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestSessionLifecycle(t *testing.T) {
	setupTestAPI(t)

	require.Equal(t, "Not signed in.\n", run(t, "whoami"))

	out := run(t, "login", "--email", mockapi.DemoOwnerEmail, "--password", mockapi.DemoPassword)
	require.Contains(t, out, "Signed in as owner@barber.test (OWNER)")
	require.Contains(t, out, "Landing on /provider/app/dashboard")

	// Each command restores the session from disk.
	out = run(t, "whoami")
	require.Contains(t, out, "Demo Owner <owner@barber.test>")
	require.Contains(t, out, "Barbershop: Fade Factory")

	tests := []struct {
		path string
		want string
	}{
		{path: "/provider/app/services", want: "allow /provider/app/services (Services)\n"},
		{path: "/provider/app", want: "redirect /provider/app -> /provider/app/dashboard (Dashboard)\n"},
		{path: "/client/favorites", want: "redirect /client/favorites -> /provider/app/dashboard (Dashboard)\n"},
		{path: "/login", want: "redirect /login -> /provider/app/dashboard (Dashboard)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, run(t, "open", tt.path))
		})
	}

	require.Equal(t, "Signed out owner@barber.test.\n", run(t, "logout"))
	require.Equal(t, "Not signed in.\n", run(t, "logout"))
	require.Equal(t,
		"redirect /provider/app/services -> /login?redirect=%2Fprovider%2Fapp%2Fservices (Login)\n",
		run(t, "open", "/provider/app/services"))
}

func TestLoginRedirect(t *testing.T) {
	setupTestAPI(t)

	out := run(t, "login", "--email", mockapi.DemoClientEmail, "--password", mockapi.DemoPassword, "--redirect", "/client/favorites")
	require.Contains(t, out, "Landing on /client/favorites")

	out = run(t, "open", "/client/barbershop/42/booking?date=2026-03-02")
	require.Equal(t, "allow /client/barbershop/42/booking?date=2026-03-02 (BarbershopBooking)\n", out)
}

func TestLoginErrors(t *testing.T) {
	setupTestAPI(t)

	tests := []struct {
		name string
		args []string
		err  string
	}{
		{name: "missing email", args: []string{"login", "--password", "x"}, err: "--email is required"},
		{name: "missing password", args: []string{"login", "--email", "a@b.c"}, err: "--password is required"},
		{name: "wrong password", args: []string{"login", "--email", mockapi.DemoOwnerEmail, "--password", "nope"}, err: "invalid email or password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.ErrorContains(t, err, tt.err)
		})
	}
	require.Equal(t, "Not signed in.\n", run(t, "whoami"))
}

func TestWhoamiEndsExpiredSession(t *testing.T) {
	var offset atomic.Int64
	base := time.Now()
	setupTestAPI(t, mockapi.WithClock(func() time.Time {
		return base.Add(time.Duration(offset.Load()))
	}))

	run(t, "login", "--email", mockapi.DemoClientEmail, "--password", mockapi.DemoPassword)
	offset.Store(int64(2 * time.Hour))

	require.Equal(t, "Session expired. Not signed in.\n", run(t, "whoami"))
	require.Equal(t, "Not signed in.\n", run(t, "whoami"))
}

func TestOpenRequiresPath(t *testing.T) {
	setupTestAPI(t)

	_, err := execute(t, "open")
	require.Error(t, err)
}

func TestRoutes(t *testing.T) {
	out := run(t, "routes")
	require.Contains(t, out, "NAME")
	require.Regexp(t, `AppointmentDetails\s+/provider/app/agendamento/:id/detalhes\s+true\s+OWNER`, out)
	require.Regexp(t, `ClientFavorites\s+/client/favorites\s+true\s+CLIENT`, out)
	require.Regexp(t, `Login\s+/login\s+false\s+-`, out)
	require.Regexp(t, `-\s+\*\s+false\s+-\s+/`, out)
}

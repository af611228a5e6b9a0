package sessions_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-barber-client/sessions"
	"github.com/jrsteele09/go-barber-client/storage"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/stretchr/testify/require"
)

const testToken = "token-123"

func ownerProfile() *users.Profile {
	return &users.Profile{
		ID:           "u-1",
		Name:         "Owner",
		Email:        "owner@example.com",
		Role:         users.RoleOwner,
		Organization: &users.Organization{ID: "42", Name: "Fade Factory"},
	}
}

func clientProfile() *users.Profile {
	return &users.Profile{ID: "u-2", Name: "Client", Email: "client@example.com", Role: users.RoleClient}
}

// fixture builds a store over a real durable file and an in-memory transient tier.
type fixture struct {
	durable   *storage.FileStore
	transient *storage.MemoryStore
	store     *sessions.Store
	tokens    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		durable:   storage.NewFileStore(filepath.Join(t.TempDir(), "session.json")),
		transient: storage.NewMemoryStore(),
	}
	f.store = f.reopen()
	return f
}

// reopen simulates an application restart over the same durable storage.
func (f *fixture) reopen() *sessions.Store {
	s := sessions.New(f.durable, f.transient)
	s.OnCredentialChange(func(token string) { f.tokens = append(f.tokens, token) })
	return s
}

func TestStore_SetAuth(t *testing.T) {
	f := newFixture(t)
	u := ownerProfile()

	require.NoError(t, f.store.SetAuth(testToken, u))

	require.True(t, f.store.IsAuthenticated())
	require.True(t, f.store.IsOwner())
	require.False(t, f.store.IsClient())
	require.Equal(t, testToken, f.store.Token())
	require.Equal(t, u, f.store.User())
	require.Equal(t, "42", f.store.OrganizationID())
	require.Equal(t, []string{testToken}, f.tokens)

	token, ok, err := f.durable.Get(sessions.KeyAuthToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testToken, token)

	blob, ok, err := f.durable.Get(sessions.KeyUserData)
	require.NoError(t, err)
	require.True(t, ok)
	var stored users.Profile
	require.NoError(t, json.Unmarshal([]byte(blob), &stored))
	require.Equal(t, *u, stored)
}

func TestStore_SetAuth_Rejects(t *testing.T) {
	f := newFixture(t)

	require.Error(t, f.store.SetAuth("", ownerProfile()))
	require.Error(t, f.store.SetAuth(testToken, nil))
	require.False(t, f.store.IsAuthenticated())
	require.Empty(t, f.tokens)
}

func TestStore_UserIsACopy(t *testing.T) {
	f := newFixture(t)
	u := ownerProfile()
	require.NoError(t, f.store.SetAuth(testToken, u))

	u.Organization.ID = "changed"
	got := f.store.User()
	got.Role = users.RoleClient

	require.Equal(t, "42", f.store.OrganizationID())
	require.True(t, f.store.IsOwner())
}

func TestStore_ClearAuth(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetAuth(testToken, ownerProfile()))
	require.NoError(t, f.durable.Set(sessions.KeyLegacyOrganizationID, "42"))

	f.store.ClearAuth()

	require.False(t, f.store.IsAuthenticated())
	require.Nil(t, f.store.User())
	require.Empty(t, f.store.OrganizationID())
	for _, key := range []string{sessions.KeyAuthToken, sessions.KeyUserData, sessions.KeyLegacyOrganizationID} {
		_, ok, err := f.durable.Get(key)
		require.NoError(t, err)
		require.False(t, ok, key)
	}
	require.Equal(t, []string{testToken, ""}, f.tokens)
}

func TestStore_ClearAuth_Idempotent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetAuth(testToken, clientProfile()))

	require.True(t, f.store.ClearAuth())
	require.False(t, f.store.ClearAuth())

	require.False(t, f.store.IsAuthenticated())
	require.Nil(t, f.store.User())
	require.Equal(t, []string{testToken, ""}, f.tokens)

	t.Run("already logged out", func(t *testing.T) {
		g := newFixture(t)
		require.False(t, g.store.ClearAuth())
		require.False(t, g.store.IsAuthenticated())
		require.Empty(t, g.tokens)
	})
}

func TestStore_Initialize(t *testing.T) {
	t.Run("rehydrates a stored session", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.SetAuth(testToken, ownerProfile()))

		f.tokens = nil
		s := f.reopen()
		s.Initialize()

		require.True(t, s.IsAuthenticated())
		require.Equal(t, ownerProfile(), s.User())
		require.Equal(t, "42", s.OrganizationID())
		require.Equal(t, []string{testToken}, f.tokens)
	})

	t.Run("empty storage is logged out", func(t *testing.T) {
		f := newFixture(t)
		f.store.Initialize()

		require.False(t, f.store.IsAuthenticated())
		require.Equal(t, []string{""}, f.tokens)
	})

	t.Run("corrupt profile with valid token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.durable.Set(sessions.KeyAuthToken, testToken))
		require.NoError(t, f.durable.Set(sessions.KeyUserData, "{not-json"))

		require.NotPanics(t, f.store.Initialize)

		require.False(t, f.store.IsAuthenticated())
		require.Nil(t, f.store.User())
		_, ok, _ := f.durable.Get(sessions.KeyUserData)
		require.False(t, ok)
		_, ok, _ = f.durable.Get(sessions.KeyAuthToken)
		require.False(t, ok)
	})

	t.Run("token without profile", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.durable.Set(sessions.KeyAuthToken, testToken))

		f.store.Initialize()

		require.False(t, f.store.IsAuthenticated())
		_, ok, _ := f.durable.Get(sessions.KeyAuthToken)
		require.False(t, ok)
	})

	t.Run("profile without token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.durable.Set(sessions.KeyUserData, `{"id":"u-1","role":"OWNER"}`))

		f.store.Initialize()

		require.False(t, f.store.IsAuthenticated())
		require.Nil(t, f.store.User())
	})

	t.Run("unreadable storage", func(t *testing.T) {
		s := sessions.New(failingStore{}, storage.NewMemoryStore())
		require.NotPanics(t, s.Initialize)
		require.False(t, s.IsAuthenticated())
	})

	t.Run("legacy organization id is not authoritative", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.durable.Set(sessions.KeyAuthToken, testToken))
		require.NoError(t, f.durable.Set(sessions.KeyUserData, `{"id":"u-2","role":"CLIENT","barbershop":null}`))
		require.NoError(t, f.durable.Set(sessions.KeyLegacyOrganizationID, "99"))

		f.store.Initialize()

		require.True(t, f.store.IsClient())
		require.Empty(t, f.store.OrganizationID())
	})

	t.Run("numeric organization id", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.durable.Set(sessions.KeyAuthToken, testToken))
		require.NoError(t, f.durable.Set(sessions.KeyUserData, `{"id":"u-1","role":"OWNER","barbershop":{"id":7,"name":"Shop"}}`))

		f.store.Initialize()

		require.Equal(t, "7", f.store.OrganizationID())
	})
}

func TestStore_SelectedRole(t *testing.T) {
	f := newFixture(t)

	f.store.SetSelectedRole(users.RoleOwner)
	require.Equal(t, users.RoleOwner, f.store.SelectedRole())
	v, ok, _ := f.transient.Get(sessions.KeySelectedRole)
	require.True(t, ok)
	require.Equal(t, "OWNER", v)

	// Not part of the durable session.
	_, ok, _ = f.durable.Get(sessions.KeySelectedRole)
	require.False(t, ok)

	// Survives a reload within the same process...
	s := f.reopen()
	s.Initialize()
	require.Equal(t, users.RoleOwner, s.SelectedRole())

	// ...but not a full restart, which starts with a fresh transient tier.
	restarted := sessions.New(f.durable, storage.NewMemoryStore())
	restarted.Initialize()
	require.Equal(t, users.RoleNone, restarted.SelectedRole())

	f.store.SetSelectedRole(users.RoleNone)
	require.Equal(t, users.RoleNone, f.store.SelectedRole())
	_, ok, _ = f.transient.Get(sessions.KeySelectedRole)
	require.False(t, ok)

	f.store.SetSelectedRole(users.RoleClient)
	f.store.ClearSelectedRole()
	require.Equal(t, users.RoleNone, f.store.SelectedRole())
}

func TestStore_SelectedRoleIndependentOfAuth(t *testing.T) {
	f := newFixture(t)
	f.store.SetSelectedRole(users.RoleClient)

	require.NoError(t, f.store.SetAuth(testToken, clientProfile()))
	f.store.ClearAuth()

	require.Equal(t, users.RoleClient, f.store.SelectedRole())
}

func TestStore_DerivedFactsWithUnknownRole(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetAuth(testToken, &users.Profile{ID: "u-3", Role: users.Role("ADMIN")}))

	require.True(t, f.store.IsAuthenticated())
	require.False(t, f.store.IsOwner())
	require.False(t, f.store.IsClient())
	require.Empty(t, f.store.OrganizationID())
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingStore) Set(string, string) error         { return errors.New("disk on fire") }
func (failingStore) Remove(string) error              { return errors.New("disk on fire") }

// gatedStore blocks the first write of the user blob until released.
type gatedStore struct {
	storage.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedStore) Set(key, value string) error {
	if key == sessions.KeyUserData {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.Store.Set(key, value)
}

func TestStore_ClearAuthDuringSetAuth(t *testing.T) {
	durable := &gatedStore{
		Store:   storage.NewMemoryStore(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := sessions.New(durable, storage.NewMemoryStore())

	var (
		mu     sync.Mutex
		header string
	)
	store.OnCredentialChange(func(token string) {
		mu.Lock()
		header = token
		mu.Unlock()
	})

	setDone := make(chan error, 1)
	go func() { setDone <- store.SetAuth(testToken, clientProfile()) }()
	<-durable.entered

	cleared := make(chan bool, 1)
	go func() { cleared <- store.ClearAuth() }()

	// The clear waits for the login in progress to finish.
	require.Never(t, func() bool { return len(cleared) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	close(durable.release)
	require.NoError(t, <-setDone)
	require.True(t, <-cleared)

	require.False(t, store.IsAuthenticated())
	mu.Lock()
	require.Empty(t, header)
	mu.Unlock()
	for _, key := range []string{sessions.KeyAuthToken, sessions.KeyUserData} {
		_, ok, err := durable.Get(key)
		require.NoError(t, err)
		require.False(t, ok, key)
	}

	restarted := sessions.New(durable, storage.NewMemoryStore())
	restarted.Initialize()
	require.False(t, restarted.IsAuthenticated())
}

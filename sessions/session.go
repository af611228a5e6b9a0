// Package sessions holds the client's authentication session: the bearer token, the
// authenticated user's profile and the pre-login role hint. The session is rehydrated
// from durable storage at start-up and kept in sync with it on every change.
package sessions

import (
	"encoding/json"
	"sync"

	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/storage"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/rs/zerolog/log"
)

// Storage keys. KeyLegacyOrganizationID is never read, only removed on logout.
const (
	KeyAuthToken            = "authToken"
	KeyUserData             = "userData"
	KeyLegacyOrganizationID = "barbershopId"
	KeySelectedRole         = "selectedRole"
)

// CredentialListener is told the current bearer token whenever it changes.
// An empty token means the session was cleared. Listeners run while the
// mutation that produced the token is still in progress and must not call
// SetAuth, ClearAuth or Initialize.
type CredentialListener func(token string)

// Store is the single owner of session state. It is safe for concurrent use.
type Store struct {
	durable   storage.Store
	transient storage.Store

	// writeMu serialises auth mutations across the in-memory change,
	// persistence and notification. mu only guards the fields for readers.
	writeMu sync.Mutex

	mu           sync.RWMutex
	token        string
	user         *users.Profile
	selectedRole users.Role

	listenersMu sync.Mutex
	listeners   []CredentialListener
}

// New creates an empty, logged-out store. Call Initialize to rehydrate it.
func New(durable, transient storage.Store) *Store {
	return &Store{
		durable:   durable,
		transient: transient,
	}
}

// OnCredentialChange registers a listener. Register before Initialize so the
// rehydrated credential is delivered before any request is issued.
func (s *Store) OnCredentialChange(l CredentialListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Initialize rehydrates the session from storage. It never fails: unreadable,
// unparseable or mismatched persisted state is discarded and the store ends up
// logged-out. It is the only place partial writes are reconciled.
func (s *Store) Initialize() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	token, user, ok := s.readPersisted()

	s.mu.Lock()
	if ok {
		s.token, s.user = token, user
	} else {
		s.token, s.user = "", nil
	}
	s.selectedRole = s.readSelectedRole()
	current := s.token
	s.mu.Unlock()

	if !ok {
		s.removePersisted()
	}
	s.notify(current)
}

func (s *Store) readPersisted() (string, *users.Profile, bool) {
	token, hasToken, err := s.durable.Get(KeyAuthToken)
	if err != nil {
		log.Err(err).Msg("Session: failed to read stored token")
		return "", nil, false
	}
	blob, hasUser, err := s.durable.Get(KeyUserData)
	if err != nil {
		log.Err(err).Msg("Session: failed to read stored user")
		return "", nil, false
	}
	if !hasToken && !hasUser {
		return "", nil, false
	}
	if !hasToken || token == "" || !hasUser {
		log.Warn().Bool("token", hasToken).Bool("user", hasUser).Msg("Session: discarding incomplete stored session")
		return "", nil, false
	}

	var user users.Profile
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		log.Err(err).Msg("Session: discarding unparseable stored user")
		return "", nil, false
	}
	return token, &user, true
}

func (s *Store) readSelectedRole() users.Role {
	v, ok, err := s.transient.Get(KeySelectedRole)
	if err != nil || !ok {
		return users.RoleNone
	}
	return users.ParseRole(v)
}

// SetAuth installs token and user as one unit, persists both and announces the
// new credential. It is the only way into the authenticated state. The in-memory
// session changes even if persisting fails; the error is still returned.
func (s *Store) SetAuth(token string, user *users.Profile) error {
	if token == "" {
		return errors.Wrapf(errors.ErrInvalidSession, "[Store SetAuth] empty token")
	}
	if user == nil {
		return errors.Wrapf(errors.ErrInvalidSession, "[Store SetAuth] missing user")
	}
	blob, err := json.Marshal(user)
	if err != nil {
		return errors.Wrapf(err, "[Store SetAuth] marshal user")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.token = token
	s.user = user.Clone()
	s.mu.Unlock()

	// userData before authToken: a crash in between leaves a profile without a
	// token, which Initialize discards.
	var persistErr error
	if err := s.durable.Set(KeyUserData, string(blob)); err != nil {
		persistErr = errors.Wrapf(err, "[Store SetAuth] persist user")
	} else if err := s.durable.Set(KeyAuthToken, token); err != nil {
		persistErr = errors.Wrapf(err, "[Store SetAuth] persist token")
	}
	if err := s.durable.Remove(KeyLegacyOrganizationID); err != nil {
		log.Err(err).Msg("Session: failed to remove legacy organization id")
	}

	s.notify(token)
	return persistErr
}

// ClearAuth drops token and user, in memory and in durable storage. It is
// idempotent: it reports whether a session actually ended, and listeners only
// hear about it in that case.
func (s *Store) ClearAuth() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	changed := s.token != "" || s.user != nil
	s.token, s.user = "", nil
	s.mu.Unlock()

	s.removePersisted()
	if changed {
		s.notify("")
	}
	return changed
}

func (s *Store) removePersisted() {
	for _, key := range []string{KeyAuthToken, KeyUserData, KeyLegacyOrganizationID} {
		if err := s.durable.Remove(key); err != nil {
			log.Err(err).Str("key", key).Msg("Session: failed to remove stored value")
		}
	}
}

// SetSelectedRole records the pre-login role hint. RoleNone clears it.
func (s *Store) SetSelectedRole(role users.Role) {
	if !role.Known() {
		s.ClearSelectedRole()
		return
	}
	s.mu.Lock()
	s.selectedRole = role
	s.mu.Unlock()

	if err := s.transient.Set(KeySelectedRole, string(role)); err != nil {
		log.Err(err).Msg("Session: failed to store selected role")
	}
}

func (s *Store) ClearSelectedRole() {
	s.mu.Lock()
	s.selectedRole = users.RoleNone
	s.mu.Unlock()

	if err := s.transient.Remove(KeySelectedRole); err != nil {
		log.Err(err).Msg("Session: failed to remove selected role")
	}
}

func (s *Store) notify(token string) {
	s.listenersMu.Lock()
	listeners := make([]CredentialListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(token)
	}
}

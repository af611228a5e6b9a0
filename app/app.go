// Package app wires the session store, navigation guard and API client into one
// client application and keeps them in sync.
package app

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/config"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/jrsteele09/go-barber-client/sessions"
	"github.com/jrsteele09/go-barber-client/storage"
	"github.com/jrsteele09/go-barber-client/users"
	"github.com/rs/zerolog/log"
)

// SessionFile is the durable session file name inside the data folder.
const SessionFile = "session.json"

// App is one local user's client: exactly one session per process.
type App struct {
	Session   *sessions.Store
	API       *apiclient.Client
	Router    *navigation.Router
	Guard     *navigation.Guard
	Navigator *navigation.Navigator

	signedOut atomic.Bool
}

type options struct {
	durable    storage.Store
	transient  storage.Store
	apiOptions []apiclient.Option
}

type Option func(*options)

// WithDurableStore replaces the session file under the data folder.
func WithDurableStore(s storage.Store) Option {
	return func(o *options) { o.durable = s }
}

func WithTransientStore(s storage.Store) Option {
	return func(o *options) { o.transient = s }
}

func WithAPIOptions(opts ...apiclient.Option) Option {
	return func(o *options) { o.apiOptions = append(o.apiOptions, opts...) }
}

func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.durable == nil {
		o.durable = storage.NewFileStore(filepath.Join(cfg.GetDataFolder(), SessionFile))
	}
	if o.transient == nil {
		o.transient = storage.NewMemoryStore()
	}

	api, err := apiclient.New(cfg.GetAPIBaseURL(), append([]apiclient.Option{apiclient.WithTimeout(cfg.GetAPITimeout())}, o.apiOptions...)...)
	if err != nil {
		return nil, errors.Wrapf(err, "[app New]")
	}
	router, err := navigation.NewRouter(navigation.DefaultRoutes())
	if err != nil {
		return nil, errors.Wrapf(err, "[app New]")
	}

	session := sessions.New(o.durable, o.transient)
	guard := navigation.NewGuard(session)
	a := &App{
		Session:   session,
		API:       api,
		Router:    router,
		Guard:     guard,
		Navigator: navigation.NewNavigator(router, guard),
	}

	// Subscribed before Initialize so the header is in place before any request.
	session.OnCredentialChange(api.SetAuthToken)
	api.OnUnauthenticated(a.onUnauthenticated)
	session.Initialize()
	return a, nil
}

// onUnauthenticated ends the session after the server rejected the credential.
// ClearAuth sends no request, so this cannot trigger itself. Only the call that
// actually ends the session navigates, however many 401s arrive together.
func (a *App) onUnauthenticated() {
	if !a.Session.ClearAuth() {
		return
	}
	a.signedOut.Store(true)
	if _, err := a.Navigator.Push(navigation.Location{Name: navigation.RouteLogin}); err != nil {
		log.Err(err).Msg("Failed to navigate to login after sign-out")
	}
}

// SignedOut reports whether the server ended the session since the last call.
func (a *App) SignedOut() bool {
	return a.signedOut.Swap(false)
}

// Login authenticates against the API and lands on redirect when it is a safe
// local path, otherwise on the role's home.
func (a *App) Login(ctx context.Context, email, password, redirect string) (*navigation.Resolved, error) {
	resp, err := a.API.Auth.Login(ctx, apiclient.Credentials{Email: email, Password: password})
	if err != nil {
		if apiclient.IsUnauthenticated(err) {
			return nil, errors.Wrapf(errors.ErrInvalidCredentials, "[App Login] %v", err)
		}
		return nil, errors.Wrapf(err, "[App Login]")
	}
	if err := a.establish(resp); err != nil {
		return nil, errors.Wrapf(err, "[App Login]")
	}

	if target, ok := navigation.SafeRedirect(redirect); ok {
		return a.Navigator.Push(navigation.Location{Path: target})
	}
	return a.Navigator.Push(a.home(navigation.HomeFor(resp.User.Role)))
}

// Register signs up with the given role. New owners land on onboarding.
func (a *App) Register(ctx context.Context, role users.Role, data apiclient.Registration) (*navigation.Resolved, error) {
	var (
		resp *apiclient.AuthResponse
		err  error
	)
	switch role {
	case users.RoleOwner:
		resp, err = a.API.Auth.RegisterOwner(ctx, data)
	case users.RoleClient:
		resp, err = a.API.Auth.RegisterClient(ctx, data)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[App Register] unknown role %q", role)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[App Register]")
	}
	if err := a.establish(resp); err != nil {
		return nil, errors.Wrapf(err, "[App Register]")
	}

	if resp.User.Role == users.RoleOwner {
		return a.Navigator.Push(navigation.Location{Name: navigation.RouteProviderOnboarding})
	}
	return a.Navigator.Push(a.home(navigation.HomeFor(resp.User.Role)))
}

// Logout revokes the token remotely and always clears the local session.
func (a *App) Logout(ctx context.Context) error {
	var remoteErr error
	if a.Session.IsAuthenticated() {
		remoteErr = a.API.Auth.Logout(ctx)
		if remoteErr != nil && !apiclient.IsUnauthenticated(remoteErr) {
			log.Warn().Err(remoteErr).Msg("Remote logout failed, clearing local session anyway")
		}
	}
	a.Session.ClearAuth()
	a.Session.ClearSelectedRole()
	a.signedOut.Store(false)
	if _, err := a.Navigator.Push(navigation.Location{Name: navigation.RouteLogin}); err != nil {
		return errors.Wrapf(err, "[App Logout]")
	}
	if remoteErr != nil && !apiclient.IsUnauthenticated(remoteErr) {
		return errors.Wrapf(remoteErr, "[App Logout] remote")
	}
	return nil
}

func (a *App) establish(resp *apiclient.AuthResponse) error {
	user := resp.User
	err := a.Session.SetAuth(resp.Token, &user)
	if errors.Is(err, errors.ErrInvalidSession) {
		return err
	}
	if err != nil {
		// The in-memory session is valid; Initialize repairs storage on next start.
		log.Err(err).Msg("Failed to persist session")
	}
	return nil
}

func (a *App) home(name string) navigation.Location {
	if name == "" {
		return navigation.Location{Name: navigation.RouteAccountType}
	}
	return navigation.Location{Name: name}
}

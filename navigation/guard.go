package navigation

import (
	"net/url"
	"slices"

	"github.com/jrsteele09/go-barber-client/users"
	"github.com/rs/zerolog/log"
)

// SessionState is what the guard needs to know about the current session.
type SessionState interface {
	IsAuthenticated() bool
	Role() users.Role
}

type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirect
)

func (k DecisionKind) String() string {
	if k == DecisionRedirect {
		return "redirect"
	}
	return "allow"
}

// Decision is the outcome of one guard evaluation.
type Decision struct {
	Kind   DecisionKind
	Target Location // set for DecisionRedirect
	Reason string
}

func Allow(reason string) Decision {
	return Decision{Kind: DecisionAllow, Reason: reason}
}

func RedirectTo(target Location, reason string) Decision {
	return Decision{Kind: DecisionRedirect, Target: target, Reason: reason}
}

func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// preAuthRoutes are hidden from users that already have a session.
var preAuthRoutes = []string{RouteAccountType, RouteLogin, RouteRegisterProvider}

// Requirement returns the effective requirement of a resolved route: auth is
// required if any matched record asks for it, and the role comes from the
// matched record closest to the leaf that declares one.
func Requirement(to *Resolved) (requiresAuth bool, requiredRole users.Role) {
	for _, rec := range to.Matched {
		if rec.Meta.RequiresAuth {
			requiresAuth = true
		}
	}
	for i := len(to.Matched) - 1; i >= 0; i-- {
		if to.Matched[i].Meta.Role != users.RoleNone {
			requiredRole = to.Matched[i].Meta.Role
			break
		}
	}
	return requiresAuth, requiredRole
}

// Guard decides whether a navigation may proceed.
type Guard struct {
	session SessionState
}

func NewGuard(session SessionState) *Guard {
	return &Guard{session: session}
}

// Check evaluates a navigation from one route to another. from may be nil on
// the first navigation.
func (g *Guard) Check(to, from *Resolved) Decision {
	isAuthenticated := g.session.IsAuthenticated()
	role := g.session.Role()
	requiresAuth, requiredRole := Requirement(to)

	d := g.decide(to, isAuthenticated, role, requiresAuth, requiredRole)

	ev := log.Debug().
		Str("to", to.FullPath).
		Str("name", to.Name).
		Bool("authenticated", isAuthenticated).
		Str("role", role.String()).
		Bool("requires_auth", requiresAuth).
		Str("decision", d.Kind.String()).
		Str("reason", d.Reason)
	if from != nil {
		ev = ev.Str("from", from.FullPath)
	}
	if d.Kind == DecisionRedirect {
		ev = ev.Str("target", targetString(d.Target))
	}
	ev.Msg("Router guard")
	return d
}

func (g *Guard) decide(to *Resolved, isAuthenticated bool, role users.Role, requiresAuth bool, requiredRole users.Role) Decision {
	// 1. Authenticated users never see the pre-auth screens again.
	if isAuthenticated && slices.Contains(preAuthRoutes, to.Name) {
		if home := HomeFor(role); home != "" {
			return RedirectTo(Location{Name: home}, "already authenticated")
		}
	}

	// 2. Protected routes.
	if !requiresAuth {
		return Allow("public route")
	}
	if !isAuthenticated {
		return RedirectTo(Location{
			Name:  RouteLogin,
			Query: url.Values{QueryRedirect: {to.FullPath}},
		}, "not authenticated")
	}
	if requiredRole == users.RoleNone {
		return Allow("authenticated")
	}
	if role == requiredRole {
		return Allow("role matches")
	}
	if home := HomeFor(role); home != "" {
		return RedirectTo(Location{Name: home}, "role mismatch")
	}
	return RedirectTo(Location{Name: RouteAccountType}, "unrecognised role")
}

func targetString(l Location) string {
	if l.Name != "" {
		return l.Name
	}
	return l.Path
}

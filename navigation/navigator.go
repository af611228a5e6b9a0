package navigation

import (
	"sync"

	"github.com/jrsteele09/go-barber-client/internal/errors"
)

// maxRedirects bounds redirect chains (route redirects and guard redirects together).
const maxRedirects = 10

// AfterEachHook runs after a navigation is committed.
type AfterEachHook func(to, from *Resolved)

// Navigator owns the current location. Every navigation goes through the guard
// before it is committed; navigations are serialised.
type Navigator struct {
	router *Router
	guard  *Guard

	mu        sync.Mutex
	current   *Resolved
	afterEach []AfterEachHook
}

func NewNavigator(router *Router, guard *Guard) *Navigator {
	return &Navigator{
		router: router,
		guard:  guard,
	}
}

func (n *Navigator) Router() *Router {
	return n.router
}

// Current returns the committed location, or nil before the first navigation.
func (n *Navigator) Current() *Resolved {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// AfterEach registers a hook called after every committed navigation.
func (n *Navigator) AfterEach(hook AfterEachHook) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.afterEach = append(n.afterEach, hook)
}

// Push navigates to loc. The returned route is where the navigation ended; its
// RedirectedFrom is set when that differs from what was asked for.
func (n *Navigator) Push(loc Location) (*Resolved, error) {
	n.mu.Lock()
	from := n.current
	to, err := n.resolve(loc, from)
	if err != nil {
		n.mu.Unlock()
		return nil, err
	}
	n.current = to
	hooks := make([]AfterEachHook, len(n.afterEach))
	copy(hooks, n.afterEach)
	n.mu.Unlock()

	for _, hook := range hooks {
		hook(to, from)
	}
	return to, nil
}

// Check runs the same resolution as Push without committing it.
func (n *Navigator) Check(loc Location) (*Resolved, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resolve(loc, n.current)
}

func (n *Navigator) resolve(loc Location, from *Resolved) (*Resolved, error) {
	var requested *Resolved
	for hop := 0; hop <= maxRedirects; hop++ {
		to, err := n.router.Resolve(loc)
		if err != nil {
			return nil, err
		}
		if requested == nil {
			requested = to
		}

		if leaf := to.Leaf(); leaf != nil && leaf.Redirect != nil {
			loc = *leaf.Redirect
			continue
		}

		decision := n.guard.Check(to, from)
		if decision.Allowed() {
			if to.FullPath != requested.FullPath || to.Name != requested.Name {
				to.RedirectedFrom = requested
			}
			return to, nil
		}
		loc = decision.Target
	}
	return nil, errors.Wrapf(errors.ErrNavigationLoop, "[Navigator Push] %s", requested.FullPath)
}

package navigation

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/jrsteele09/go-barber-client/internal/errors"
)

// Location is a navigation target, addressed by Name (+Params) or by Path.
// A Path may carry its own query string.
type Location struct {
	Name   string
	Path   string
	Params map[string]string
	Query  url.Values
}

// Record is a compiled route: its absolute pattern and its ancestry.
type Record struct {
	Name     string
	Pattern  string
	Meta     Meta
	Redirect *Location
	Parent   *Record

	segments []string
	catchAll bool
}

// Chain returns the record and its ancestors, root first.
func (r *Record) Chain() []*Record {
	var chain []*Record
	for rec := r; rec != nil; rec = rec.Parent {
		chain = append([]*Record{rec}, chain...)
	}
	return chain
}

// Resolved is a location matched against the route table.
type Resolved struct {
	Name     string
	Path     string
	FullPath string
	Params   map[string]string
	Query    url.Values
	Matched  []*Record // root first, leaf last

	// RedirectedFrom is the originally requested route when a navigation ended
	// somewhere else.
	RedirectedFrom *Resolved
}

// Leaf is the most specific matched record.
func (r *Resolved) Leaf() *Record {
	if r == nil || len(r.Matched) == 0 {
		return nil
	}
	return r.Matched[len(r.Matched)-1]
}

// Title is the leaf's display title.
func (r *Resolved) Title() string {
	if leaf := r.Leaf(); leaf != nil {
		return leaf.Meta.Title
	}
	return ""
}

// Router resolves locations against a compiled route table.
type Router struct {
	records []*Record
	byName  map[string]*Record
}

// NewRouter compiles the route definitions. Duplicate names are rejected.
func NewRouter(routes []Route) (*Router, error) {
	r := &Router{byName: make(map[string]*Record)}
	if err := r.add(routes, nil); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Router) add(routes []Route, parent *Record) error {
	for _, route := range routes {
		rec := &Record{
			Name:     route.Name,
			Meta:     route.Meta,
			Redirect: route.Redirect,
			Parent:   parent,
		}
		if route.Path == "*" {
			rec.Pattern = "*"
			rec.catchAll = true
		} else {
			rec.Pattern = joinPattern(parent, route.Path)
			rec.segments = splitPath(rec.Pattern)
		}
		if rec.Name != "" {
			if _, exists := r.byName[rec.Name]; exists {
				return fmt.Errorf("[Router add] duplicate route name %q", rec.Name)
			}
			r.byName[rec.Name] = rec
		}
		r.records = append(r.records, rec)
		if err := r.add(route.Children, rec); err != nil {
			return err
		}
	}
	return nil
}

func joinPattern(parent *Record, p string) string {
	if strings.HasPrefix(p, "/") || parent == nil {
		return path.Clean("/" + p)
	}
	return path.Clean(parent.Pattern + "/" + p)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Records returns every compiled record in registration order.
func (r *Router) Records() []*Record {
	out := make([]*Record, len(r.records))
	copy(out, r.records)
	return out
}

// Resolve matches a location. Paths that match nothing (and no catch-all) and
// unknown names are ErrRouteNotFound.
func (r *Router) Resolve(loc Location) (*Resolved, error) {
	if loc.Name != "" {
		return r.resolveName(loc)
	}
	return r.resolvePath(loc)
}

func (r *Router) resolveName(loc Location) (*Resolved, error) {
	rec, ok := r.byName[loc.Name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrRouteNotFound, "[Router Resolve] name %q", loc.Name)
	}

	params := make(map[string]string, len(loc.Params))
	parts := make([]string, 0, len(rec.segments))
	for _, seg := range rec.segments {
		if name, isParam := strings.CutPrefix(seg, ":"); isParam {
			v, ok := loc.Params[name]
			if !ok || v == "" {
				return nil, errors.Wrapf(errors.ErrMissingParam, "[Router Resolve] %q needs %q", loc.Name, name)
			}
			params[name] = v
			parts = append(parts, url.PathEscape(v))
			continue
		}
		parts = append(parts, seg)
	}
	return newResolved(rec, "/"+strings.Join(parts, "/"), params, loc.Query, ""), nil
}

func (r *Router) resolvePath(loc Location) (*Resolved, error) {
	raw := loc.Path
	if raw == "" {
		raw = "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrRouteNotFound, "[Router Resolve] path %q: %v", raw, err)
	}

	// The query string is kept verbatim unless the caller overrides parts of it.
	query := u.Query()
	rawQuery := u.RawQuery
	if len(loc.Query) > 0 {
		for k, vs := range loc.Query {
			query[k] = append([]string(nil), vs...)
		}
		rawQuery = ""
	}

	// Matching uses the cleaned path; FullPath keeps the path as requested.
	requested := u.EscapedPath()
	if !strings.HasPrefix(requested, "/") {
		requested = "/" + requested
	}
	p := path.Clean(requested)
	segments := splitPath(p)

	var (
		best       *Record
		bestScore  = -1
		bestParams map[string]string
	)
	for _, rec := range r.records {
		params, score, ok := rec.match(segments)
		if !ok || score <= bestScore {
			continue
		}
		best, bestScore, bestParams = rec, score, params
	}
	if best == nil {
		return nil, errors.Wrapf(errors.ErrRouteNotFound, "[Router Resolve] path %q", p)
	}
	res := newResolved(best, p, bestParams, query, rawQuery)
	res.FullPath = requested + strings.TrimPrefix(res.FullPath, p)
	return res, nil
}

// match scores a candidate: static segments beat params, the catch-all loses to everything.
func (rec *Record) match(segments []string) (map[string]string, int, bool) {
	if rec.catchAll {
		return map[string]string{"pathMatch": strings.Join(segments, "/")}, 0, true
	}
	if len(segments) != len(rec.segments) {
		return nil, 0, false
	}
	params := make(map[string]string)
	score := 1
	for i, seg := range rec.segments {
		if name, isParam := strings.CutPrefix(seg, ":"); isParam {
			v, err := url.PathUnescape(segments[i])
			if err != nil {
				return nil, 0, false
			}
			params[name] = v
			score += 2
			continue
		}
		if seg != segments[i] {
			return nil, 0, false
		}
		score += 3
	}
	return params, score, true
}

func newResolved(rec *Record, p string, params map[string]string, query url.Values, rawQuery string) *Resolved {
	if query == nil {
		query = url.Values{}
	}
	full := p
	if rawQuery != "" {
		full += "?" + rawQuery
	} else if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return &Resolved{
		Name:     rec.Name,
		Path:     p,
		FullPath: full,
		Params:   params,
		Query:    query,
		Matched:  rec.Chain(),
	}
}

package navigation

import (
	"net/url"
	"strings"
)

// SafeRedirect validates a post-login redirect value. Only same-origin absolute
// paths are accepted; anything else returns false.
func SafeRedirect(raw string) (string, bool) {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	return raw, true
}

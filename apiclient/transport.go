package apiclient

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const headerRequestID = "X-Request-ID"

// authTransport attaches the client's current credential to every request and
// reports 401 responses. It never retries.
type authTransport struct {
	base   http.RoundTripper
	client *Client
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Del("Authorization")
	if token := t.client.AuthToken(); token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(r)
	}
	if r.Header.Get(headerRequestID) == "" {
		r.Header.Set(headerRequestID, uuid.New().String())
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(r)
	if err != nil {
		log.Err(err).Str("method", r.Method).Str("url", r.URL.Redacted()).Msg("API request failed")
		return nil, err
	}

	log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", resp.StatusCode).
		Str("request_id", r.Header.Get(headerRequestID)).
		Dur("took", time.Since(start)).
		Msg("API request")

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().Str("path", r.URL.Path).Msg("API answered 401, ending session")
		t.client.unauthenticated()
	}
	return resp, nil
}

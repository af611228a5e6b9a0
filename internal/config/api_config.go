package config

import "time"

type API struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"https://api-lumini.onrender.com/api/"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
}

var _ APIConfig = API{}

func (a API) GetAPIBaseURL() string {
	return a.BaseURL
}

func (a API) GetAPITimeout() time.Duration {
	if a.Timeout <= 0 {
		return 10 * time.Second
	}
	return a.Timeout
}

type Mock struct {
	Port      string        `envconfig:"MOCK_PORT" default:"9090"`
	JWTSecret string        `envconfig:"MOCK_JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"MOCK_TOKEN_TTL" default:"24h"`
}

var _ MockConfig = Mock{}

func (m Mock) GetMockPort() string {
	return listenAddr(m.Port, "9090")
}

func (m Mock) GetMockJWTSecret() string {
	return m.JWTSecret
}

func (m Mock) GetMockTokenTTL() time.Duration {
	return m.TokenTTL
}

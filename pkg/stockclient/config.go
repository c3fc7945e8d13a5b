package stockclient

import (
	"os"
	"time"
)

// DefaultTimeout bounds a single request when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Config is the preconfigured HTTP collaborator shared by every call.
type Config struct {
	// BaseURL is the root of the stock service, e.g. http://localhost:8080.
	BaseURL string
	// Headers are sent on every request.
	Headers map[string]string
	// Token, when set, is sent as "Authorization: Bearer <token>".
	Token   string
	Timeout time.Duration
}

// LoadConfig reads STOCK_API_BASE_URL, STOCK_API_TOKEN and
// STOCK_API_TIMEOUT from the environment.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("STOCK_API_BASE_URL"),
		Token:   os.Getenv("STOCK_API_TOKEN"),
		Timeout: DefaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if d, err := time.ParseDuration(os.Getenv("STOCK_API_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

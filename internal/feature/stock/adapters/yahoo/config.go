// Package yahoo provides a Yahoo Finance backed market and symbol resolver.
package yahoo

import (
	"os"
	"time"
)

const (
	defaultChartBaseURL  = "https://query1.finance.yahoo.com"
	defaultSearchBaseURL = "https://query2.finance.yahoo.com"
	defaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
	defaultCountry       = "United States"
)

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	ChartBaseURL  string        // Base URL of the chart API
	SearchBaseURL string        // Base URL of the symbol search API
	UserAgent     string        // Yahoo rejects requests without a browser User-Agent
	Country       string        // Search region
	Timeout       time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables,
// falling back to the public endpoints.
func LoadConfig() Config {
	return Config{
		ChartBaseURL:  getenv("YAHOO_CHART_BASE_URL", defaultChartBaseURL),
		SearchBaseURL: getenv("YAHOO_SEARCH_BASE_URL", defaultSearchBaseURL),
		UserAgent:     getenv("YAHOO_USER_AGENT", defaultUserAgent),
		Country:       getenv("YAHOO_COUNTRY", defaultCountry),
		Timeout:       10 * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

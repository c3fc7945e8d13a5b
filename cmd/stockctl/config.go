package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"nautilus/pkg/stockclient"
)

// config is resolved from flags, STOCKCTL_* environment variables and
// ~/.stockctl.yaml, in that order of precedence.
type config struct {
	BaseURL   string            `mapstructure:"base_url"`
	Token     string            `mapstructure:"token"`
	Timeout   time.Duration     `mapstructure:"timeout"`
	Headers   map[string]string `mapstructure:"headers"`
	JWTSecret string            `mapstructure:"jwt_secret"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("token", "")
	v.SetDefault("timeout", "15s")
	v.SetDefault("jwt_secret", "")
	v.SetEnvPrefix("STOCKCTL")
	v.AutomaticEnv()
	return v
}

// bindFlags maps persistent flags onto config keys.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"base_url": "base-url",
		"token":    "token",
		"timeout":  "timeout",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind %s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig reads the config file (explicit path or ~/.stockctl.yaml) and
// unmarshals the merged settings. A missing default file is not an error.
func loadConfig(v *viper.Viper, path string) (config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".stockctl")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	return cfg, nil
}

func (c config) clientConfig() stockclient.Config {
	return stockclient.Config{
		BaseURL: c.BaseURL,
		Headers: c.Headers,
		Token:   c.Token,
		Timeout: c.Timeout,
	}
}

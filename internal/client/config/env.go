package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type envConfig struct {
	ServerEndpointAddr string        `envconfig:"SERVER_ADDR"`
	AccessToken        string        `envconfig:"ACCESS_TOKEN"`
	SecretKey          string        `envconfig:"SECRET_KEY"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT"`
}

// parseEnv overlays VAULTSHARE_* variables. Keeping the token in the
// environment keeps it out of shell history.
func parseEnv(cfg *Config) {
	e := envConfig{
		ServerEndpointAddr: cfg.ServerEndpointAddr,
		AccessToken:        cfg.AccessToken,
		SecretKey:          cfg.SecretKey,
		RequestTimeout:     cfg.RequestTimeout,
	}

	if err := envconfig.Process("VAULTSHARE", &e); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = e.ServerEndpointAddr
	cfg.AccessToken = e.AccessToken
	cfg.SecretKey = e.SecretKey
	cfg.RequestTimeout = e.RequestTimeout
}

package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "VAULTSHARE"

// envConfig lists the VAULTSHARE_* variables. Unset variables leave the
// corresponding field untouched.
type envConfig struct {
	EndpointAddrGRPC    string        `envconfig:"GRPC_ADDR"`
	EndpointAddrHTTP    string        `envconfig:"HTTP_ADDR"`
	PublicBaseURL       string        `envconfig:"PUBLIC_BASE_URL"`
	DatabaseDriver      string        `envconfig:"DB_DRIVER"`
	DatabaseDSN         string        `envconfig:"DATABASE_DSN"`
	SecretKey           string        `envconfig:"SECRET_KEY"`
	EncryptionKey       string        `envconfig:"ENCRYPTION_KEY"`
	LogFormat           string        `envconfig:"LOG_FORMAT"`
	RetrieveMaxRetries  uint64        `envconfig:"RETRIEVE_MAX_RETRIES"`
	RetrieveBaseBackoff time.Duration `envconfig:"RETRIEVE_BASE_BACKOFF"`
	SeedFile            string        `envconfig:"SEED_FILE"`
}

// parseEnv overlays VAULTSHARE_* environment variables onto config.
// A malformed value panics, like the other layers.
func parseEnv(config *Config) {
	e := envConfig{
		EndpointAddrGRPC:    config.EndpointAddrGRPC,
		EndpointAddrHTTP:    config.EndpointAddrHTTP,
		PublicBaseURL:       config.PublicBaseURL,
		DatabaseDriver:      config.DatabaseDriver,
		DatabaseDSN:         config.DatabaseDSN,
		SecretKey:           config.SecretKey,
		EncryptionKey:       config.EncryptionKey,
		LogFormat:           config.LogFormat,
		RetrieveMaxRetries:  config.RetrieveMaxRetries,
		RetrieveBaseBackoff: config.RetrieveBaseBackoff,
		SeedFile:            config.SeedFile,
	}

	if err := envconfig.Process(envPrefix, &e); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = e.EndpointAddrGRPC
	config.EndpointAddrHTTP = e.EndpointAddrHTTP
	config.PublicBaseURL = e.PublicBaseURL
	config.DatabaseDriver = e.DatabaseDriver
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.EncryptionKey = e.EncryptionKey
	config.LogFormat = e.LogFormat
	config.RetrieveMaxRetries = e.RetrieveMaxRetries
	config.RetrieveBaseBackoff = e.RetrieveBaseBackoff
	config.SeedFile = e.SeedFile
}

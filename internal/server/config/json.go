package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vaultshare/internal/flagx"
	"github.com/dmitrijs2005/vaultshare/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "10ms" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP    string         `json:"endpoint_addr_http"`
	PublicBaseURL       string         `json:"public_base_url"`
	DatabaseDriver      string         `json:"database_driver"`
	DatabaseDSN         string         `json:"database_dsn"`
	SecretKey           string         `json:"secret_key"`
	EncryptionKey       string         `json:"encryption_key"`
	LogFormat           string         `json:"log_format"`
	RetrieveMaxRetries  uint64         `json:"retrieve_max_retries"`
	RetrieveBaseBackoff timex.Duration `json:"retrieve_base_backoff"`
	SeedFile            string         `json:"seed_file"`
}

// parseJson overlays the file named by -c / -config onto config. Keys absent
// from the file keep their current value. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.EncryptionKey, c.EncryptionKey)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.SeedFile, c.SeedFile)

	if c.RetrieveMaxRetries != 0 {
		config.RetrieveMaxRetries = c.RetrieveMaxRetries
	}
	if c.RetrieveBaseBackoff.Duration != 0 {
		config.RetrieveBaseBackoff = c.RetrieveBaseBackoff.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

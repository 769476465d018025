package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overrides set variables only", func(t *testing.T) {
		t.Setenv("VAULTSHARE_DB_DRIVER", "memory")
		t.Setenv("VAULTSHARE_ENCRYPTION_KEY", "from-env")
		t.Setenv("VAULTSHARE_RETRIEVE_BASE_BACKOFF", "1s")
		t.Setenv("VAULTSHARE_SEED_FILE", "/tmp/entries.json")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "memory", cfg.DatabaseDriver)
		assert.Equal(t, "from-env", cfg.EncryptionKey)
		assert.Equal(t, time.Second, cfg.RetrieveBaseBackoff)
		assert.Equal(t, "/tmp/entries.json", cfg.SeedFile)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, "secretKey", cfg.SecretKey)
	})

	t.Run("malformed number panics", func(t *testing.T) {
		t.Setenv("VAULTSHARE_RETRIEVE_MAX_RETRIES", "many")

		cfg := &Config{}
		require.Panics(t, func() { parseEnv(cfg) })
	})
}

package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/vaultshare/internal/flagx"
)

var serverFlags = []string{"-a", "-w", "-u", "-driver", "-d", "-s", "-k", "-l", "-retries", "-backoff", "-seed"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        gRPC bind address (e.g. ":50051")
//	-w string        HTTP bind address for share links (e.g. ":8080")
//	-u string        public base URL used in generated links
//	-driver string   database driver: postgres | sqlite | memory
//	-d string        database DSN
//	-s string        JWT HMAC secret key
//	-k string        at-rest encryption key
//	-l string        log format: text | json
//	-retries uint    max retries for a contended retrieval
//	-backoff dur     base backoff between those retries (e.g. "10ms")
//	-seed string     JSON file with vault entries to load at startup
//
// os.Args is filtered through flagx.FilterArgs first so -c / -config are
// left to the JSON layer.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.PublicBaseURL, "u", config.PublicBaseURL, "public base URL for share links")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (postgres|sqlite|memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.EncryptionKey, "k", config.EncryptionKey, "encryption key")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (text|json)")
	fs.Uint64Var(&config.RetrieveMaxRetries, "retries", config.RetrieveMaxRetries, "max retries for contended retrieval")
	fs.DurationVar(&config.RetrieveBaseBackoff, "backoff", config.RetrieveBaseBackoff, "base backoff for contended retrieval")
	fs.StringVar(&config.SeedFile, "seed", config.SeedFile, "vault entries seed file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

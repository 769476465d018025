package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/vaultshare/internal/flagx"
)

// parseFlags populates Config from the global flags. Subcommand flags are
// filtered out by flagx.FilterArgs and parsed by the command itself.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-token", "-s", "-timeout"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.AccessToken, "token", cfg.AccessToken, "owner access token")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT secret key (mint only)")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

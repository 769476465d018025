package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/vaultshare/internal/client/client"
	"github.com/dmitrijs2005/vaultshare/internal/client/config"
)

var ErrUsage = errors.New("usage: cli [-a addr] [-token jwt] [-s secret] share|revoke|open|mint [flags]")

// globalFlags take a value and belong to the config layers.
var globalFlags = map[string]bool{
	"-a": true, "-token": true, "-s": true, "-timeout": true, "-c": true, "-config": true,
}

type App struct {
	config *config.Config
	dial   func(c *config.Config) (client.Client, error)
	http   *http.Client
	out    io.Writer
	prompt io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		dial:   dialServer,
		http:   &http.Client{Timeout: c.RequestTimeout},
		out:    os.Stdout,
		prompt: os.Stderr,
	}
}

func dialServer(c *config.Config) (client.Client, error) {
	return client.NewShareClient(c.ServerEndpointAddr, c.AccessToken, c.RequestTimeout)
}

// splitCommand finds the subcommand in args and returns it with its own
// arguments. Global flags and their values are skipped.
func splitCommand(args []string) (string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if globalFlags[arg] {
				i++
			}
			continue
		}
		return arg, args[i+1:]
	}
	return "", nil
}

// Run executes the subcommand found in args (usually os.Args[1:]).
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := splitCommand(args)

	switch cmd {
	case "share":
		return a.withClient(func(c client.Client) error { return a.share(ctx, c, rest) })
	case "revoke":
		return a.withClient(func(c client.Client) error { return a.revoke(ctx, c, rest) })
	case "open":
		return a.open(ctx, rest)
	case "mint":
		return a.mint(rest)
	case "", "help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		if cmd == "" {
			return ErrUsage
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
	}
}

func (a *App) withClient(fn func(c client.Client) error) error {
	c, err := a.dial(a.config)
	if err != nil {
		return fmt.Errorf("connect %s: %w", a.config.ServerEndpointAddr, err)
	}
	defer c.Close()
	return fn(c)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

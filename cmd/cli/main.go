package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vaultshare/internal/client/cli"
	"github.com/dmitrijs2005/vaultshare/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}

package main

import (
	"github.com/urfave/cli/v2"

	"github.com/devfolio/portfolio-api/internal/app"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server; configuration is read from the environment",
		Action: func(cliCtx *cli.Context) error {
			ctx := cliCtx.Context
			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}

			srv, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}

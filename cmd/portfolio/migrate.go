package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	mongostore "github.com/devfolio/portfolio-api/internal/infrastructure/db/mongo"
	pgstore "github.com/devfolio/portfolio-api/internal/infrastructure/db/postgres"
	"github.com/devfolio/portfolio-api/internal/pkg/config"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Bootstrap the configured store schema (postgres migrations or mongo indexes)",
		ArgsUsage: "up|down|status",
		Action: func(cliCtx *cli.Context) error {
			command := cliCtx.Args().First()
			if command == "" {
				command = "up"
			}
			ctx := cliCtx.Context
			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}

			switch cfg.Store.Driver {
			case config.StorePostgres:
				pool, err := pgstore.Connect(ctx, pgstore.Config{URL: cfg.Postgres.URL})
				if err != nil {
					return err
				}
				defer pool.Close()
				return pgstore.NewMigrator(pool, log).Run(ctx, command)

			case config.StoreMongo:
				if command != "up" {
					return fmt.Errorf("mongo store supports only %q", "up")
				}
				client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
				if err != nil {
					return err
				}
				defer client.Disconnect(context.Background())
				if err := mongostore.EnsureIndexes(ctx, db); err != nil {
					return err
				}
				log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
				return nil
			}

			log.Info().Str("driver", cfg.Store.Driver).Msg("nothing to migrate")
			return nil
		},
	}
}

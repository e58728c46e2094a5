package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"inventory-services/api"
	"inventory-services/db"
	"inventory-services/inventory"
	"inventory-services/invlog"
	"inventory-services/seed"
	"inventory-services/types"

	"github.com/ninja-software/log_helpers"
	"github.com/ninja-software/terror/v2"
	"github.com/oklog/run"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Variable passed in at compile time using `-ldflags`
var (
	Version          string // -X main.Version=$(git describe --tags --abbrev=0)
	GitHash          string // -X main.GitHash=$(git rev-parse HEAD)
	GitBranch        string // -X main.GitBranch=$(git rev-parse --abbrev-ref HEAD)
	BuildDate        string // -X main.BuildDate=$(date -u +%Y%m%d%H%M%S)
	UnCommittedFiles string // -X main.UnCommittedFiles=$(git status --porcelain | wc -l)"
)

const envPrefix = "INVENTORY"

func main() {
	app := &cli.App{
		Compiled: time.Now(),
		Usage:    "Run the inventory server or database administration commands",
		Flags:    []cli.Flag{},
		Commands: []*cli.Command{
			{
				// This is not using the built in version so ansible can more easily read the version
				Name: "version",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "full", Usage: "Prints full version and build info", Value: false},
				},
				Action: func(c *cli.Context) error {
					if c.Bool("full") {
						fmt.Printf("Version=%s\n", Version)
						fmt.Printf("Commit=%s\n", GitHash)
						fmt.Printf("Branch=%s\n", GitBranch)
						fmt.Printf("BuildDate=%s\n", BuildDate)
						fmt.Printf("WorkingCopyState=%s uncommitted\n", UnCommittedFiles)
						return nil
					}
					fmt.Printf("%s-\n", Version)
					return nil
				},
			},
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "database_user", Value: "inventory", EnvVars: []string{envPrefix + "_DATABASE_USER", "DATABASE_USER"}, Usage: "The database user"},
					&cli.StringFlag{Name: "database_pass", Value: "dev", EnvVars: []string{envPrefix + "_DATABASE_PASS", "DATABASE_PASS"}, Usage: "The database pass"},
					&cli.StringFlag{Name: "database_host", Value: "localhost", EnvVars: []string{envPrefix + "_DATABASE_HOST", "DATABASE_HOST"}, Usage: "The database host"},
					&cli.StringFlag{Name: "database_port", Value: "5432", EnvVars: []string{envPrefix + "_DATABASE_PORT", "DATABASE_PORT"}, Usage: "The database port"},
					&cli.StringFlag{Name: "database_name", Value: "inventory", EnvVars: []string{envPrefix + "_DATABASE_NAME", "DATABASE_NAME"}, Usage: "The database name"},
					&cli.StringFlag{Name: "database_application_name", Value: "API Server", EnvVars: []string{envPrefix + "_DATABASE_APPLICATION_NAME"}, Usage: "Postgres application name"},
					&cli.IntFlag{Name: "database_max_conns", Value: db.DefaultMaxConns, EnvVars: []string{envPrefix + "_DATABASE_MAX_CONNS"}, Usage: "Maximum number of pooled database connections"},

					&cli.StringFlag{Name: "environment", Value: "development", DefaultText: "development", EnvVars: []string{envPrefix + "_ENVIRONMENT", "ENVIRONMENT"}, Usage: "This program environment (development, testing, training, staging, production), it sets the log levels"},
					&cli.StringFlag{Name: "log_level", Value: "InfoLevel", EnvVars: []string{envPrefix + "_LOG_LEVEL"}, Usage: "Set the log level for zerolog (Options: PanicLevel, FatalLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel"},

					&cli.StringFlag{Name: "api_addr", Value: ":8086", EnvVars: []string{envPrefix + "_API_ADDR", "API_ADDR"}, Usage: "host:port to run the API"},
				},

				Usage: "run server",
				Action: func(c *cli.Context) error {
					ctx, cancel := context.WithCancel(c.Context)
					environment := c.String("environment")
					level := c.String("log_level")
					log := invlog.New(environment, level)

					g := &run.Group{}
					// Listen for os.interrupt
					g.Add(run.SignalHandler(ctx, os.Interrupt))
					// start the server
					g.Add(func() error { return ServeFunc(c, log) }, func(err error) { cancel() })

					err := g.Run()
					if errors.Is(err, run.SignalError{Signal: os.Interrupt}) {
						err = terror.Warn(err)
					}
					log_helpers.TerrorEcho(ctx, err, log)
					return nil
				},
			},
			{
				Name: "db",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "database_user", Value: "inventory", EnvVars: []string{envPrefix + "_DATABASE_USER", "DATABASE_USER"}, Usage: "The database user"},
					&cli.StringFlag{Name: "database_pass", Value: "dev", EnvVars: []string{envPrefix + "_DATABASE_PASS", "DATABASE_PASS"}, Usage: "The database pass"},
					&cli.StringFlag{Name: "database_host", Value: "localhost", EnvVars: []string{envPrefix + "_DATABASE_HOST", "DATABASE_HOST"}, Usage: "The database host"},
					&cli.StringFlag{Name: "database_port", Value: "5432", EnvVars: []string{envPrefix + "_DATABASE_PORT", "DATABASE_PORT"}, Usage: "The database port"},
					&cli.StringFlag{Name: "database_name", Value: "inventory", EnvVars: []string{envPrefix + "_DATABASE_NAME", "DATABASE_NAME"}, Usage: "The database name"},
					&cli.StringFlag{Name: "database_application_name", Value: "DB Admin", EnvVars: []string{envPrefix + "_DATABASE_APPLICATION_NAME"}, Usage: "Postgres application name"},
					&cli.BoolFlag{Name: "migrate", EnvVars: []string{envPrefix + "_DB_MIGRATE"}, Usage: "migrate the database up"},
					&cli.BoolFlag{Name: "drop", EnvVars: []string{envPrefix + "_DB_DROP"}, Usage: "migrate the database down"},
					&cli.BoolFlag{Name: "seed", EnvVars: []string{envPrefix + "_DB_SEED", "DB_SEED"}, Usage: "seed the database"},
				},
				Usage: "migrate and seed the database",
				Action: func(c *cli.Context) error {
					params := &types.DatabaseParams{
						User:            c.String("database_user"),
						Pass:            c.String("database_pass"),
						Host:            c.String("database_host"),
						Port:            c.String("database_port"),
						Name:            c.String("database_name"),
						ApplicationName: c.String("database_application_name"),
					}

					if c.Bool("drop") {
						err := db.MigrateDown(db.ConnString(params))
						if err != nil {
							return terror.Error(err)
						}
						fmt.Println(" Migrated down")
					}

					if c.Bool("migrate") {
						err := db.MigrateUp(db.ConnString(params))
						if err != nil {
							return terror.Error(err)
						}
						fmt.Println(" Migrated up")
					}

					if c.Bool("seed") {
						pgxconn, err := db.New(c.Context, params)
						if err != nil {
							return terror.Panic(err)
						}
						defer pgxconn.Close()

						seeder := seed.NewSeeder(pgxconn)
						return seeder.Run(c.Context)
					}

					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		terror.Echo(err)
		os.Exit(1) // so ci knows it no good
	}
}

func ServeFunc(ctxCLI *cli.Context, log *zerolog.Logger) error {
	config := &types.Config{
		Environment: ctxCLI.String("environment"),
		APIAddr:     ctxCLI.String("api_addr"),
		Database: &types.DatabaseParams{
			User:            ctxCLI.String("database_user"),
			Pass:            ctxCLI.String("database_pass"),
			Host:            ctxCLI.String("database_host"),
			Port:            ctxCLI.String("database_port"),
			Name:            ctxCLI.String("database_name"),
			ApplicationName: ctxCLI.String("database_application_name"),
			MaxConns:        int32(ctxCLI.Int("database_max_conns")),
		},
	}

	pgxconn, err := db.New(context.Background(), config.Database)
	if err != nil {
		return terror.Panic(err, "could not initialise database")
	}

	count := 0
	err = db.IsSchemaDirty(context.Background(), pgxconn, &count)
	if err != nil {
		return terror.Error(api.ErrCheckDBQuery)
	}
	if count > 0 {
		return terror.Error(api.ErrCheckDBDirty)
	}

	service := inventory.NewService(db.NewProductStore(pgxconn), log)

	// API Server
	a := api.NewAPI(log, pgxconn, service, config.APIAddr)

	apiServer := &http.Server{
		Addr:    a.Addr,
		Handler: a.Routes,
	}

	a.Log.Info().Str("addr", a.Addr).Msg("Starting API")
	return apiServer.ListenAndServe()
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/hackathon-admin/app"
	"github.com/Black-And-White-Club/hackathon-admin/app/modules/auth"
	authservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/application"
	"github.com/Black-And-White-Club/hackathon-admin/config"
	"github.com/Black-And-White-Club/hackathon-admin/db/bundb"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/observability"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:    app.ServiceName,
		Usage:   "hackathon scoring admin API",
		Version: app.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: migrateDB,
			},
			{
				Name:  "grant-admin",
				Usage: "create or promote an admin user and print a bearer token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true, Usage: "admin email address"},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to jwt.default_ttl)"},
				},
				Action: grantAdmin,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	runErr := application.Start(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := application.Close(closeCtx); err != nil {
		application.Observability.Logger.Error("Failed to close application", "error", err)
	}

	if runErr != nil {
		return runErr
	}
	fmt.Println("Application shut down gracefully.")
	return nil
}

func migrateDB(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	obs, err := observability.New(app.TelemetryConfig(cfg))
	if err != nil {
		return err
	}
	defer obs.Shutdown(context.Background())

	db, err := bundb.Open(c.Context, cfg.Postgres, obs.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	return bundb.Migrate(c.Context, db, obs.Logger)
}

func grantAdmin(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	telemetry := app.TelemetryConfig(cfg)
	telemetry.LogLevel = "warn"
	telemetry.Output = os.Stderr
	obs, err := observability.New(telemetry)
	if err != nil {
		return err
	}
	defer obs.Shutdown(context.Background())

	db, err := bundb.Open(c.Context, cfg.Postgres, obs.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ttl := c.Duration("ttl")
	if ttl <= 0 {
		ttl = cfg.JWT.DefaultTTL
	}

	authModule := auth.NewModule(c.Context, cfg, obs, db)
	grant, err := authModule.GetService().GrantAdmin(c.Context, c.String("email"), ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, grantSummary(grant))
	fmt.Println(grant.Token)
	return nil
}

func grantSummary(grant *authservice.AdminGrant) string {
	switch {
	case grant.Created:
		return fmt.Sprintf("Created admin user %s (id %d)", grant.Principal.Email, grant.Principal.UserID)
	case grant.Promoted:
		return fmt.Sprintf("Promoted user %s (id %d) to admin", grant.Principal.Email, grant.Principal.UserID)
	default:
		return fmt.Sprintf("User %s (id %d) is already an admin", grant.Principal.Email, grant.Principal.UserID)
	}
}

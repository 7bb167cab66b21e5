package main

import (
	"context" // Seed context
	"os"      // Process arguments

	"storefront/internal/config" // Custom import path (Config)
	"storefront/internal/db"     // Custom import path (Database)
	"storefront/internal/shop"   // Custom import path (Service)
	"storefront/internal/utils"  // Logger setup

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"github.com/urfave/cli/v2"   // Command line parsing
)

// Main entry point for migration
func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the storefront database",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "create or update every table",
				Action: migrateAction,
			},
			{
				Name:  "seed",
				Usage: "migrate and create the administrator account when missing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "administrator name (defaults to ADMIN_USERNAME)"},
					&cli.StringFlag{Name: "password", Usage: "administrator password (defaults to ADMIN_PASSWORD)"},
					&cli.Float64Flag{Name: "wallet", Usage: "initial balance (defaults to ADMIN_WALLET)"},
				},
				Action: seedAction,
			},
		},
		DefaultCommand: "up",
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// open loads configuration, sets up logging and migrates the schema
func open() (*config.Config, *shop.Service, error) {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		return nil, nil, err
	}
	if err := utils.ConfigureLogger(cfg.IsProd, cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, nil, err
	}
	logrus.WithField("driver", cfg.DBDriver).Info("Migration completed")
	return cfg, shop.NewService(conn), nil
}

func migrateAction(*cli.Context) error {
	_, _, err := open()
	return err
}

func seedAction(c *cli.Context) error {
	cfg, svc, err := open()
	if err != nil {
		return err
	}
	username, password, wallet := cfg.AdminUsername, cfg.AdminPassword, cfg.AdminWallet
	if c.IsSet("username") {
		username = c.String("username")
	}
	if c.IsSet("password") {
		password = c.String("password")
	}
	if c.IsSet("wallet") {
		wallet = c.Float64("wallet")
	}
	created, err := svc.EnsureAdmin(context.Background(), username, password, wallet)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"username": username, // Administrator name
		"created":  created,  // False when the account already existed
	}).Info("Admin seed finished")
	return nil
}

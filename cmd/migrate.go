package cmd

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/courseplatform/ms-go-orders/config"
	"github.com/courseplatform/ms-go-orders/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := config.Load()
		if err != nil {
			logrus.WithError(err).Fatal("Failed to load configuration")
		}
		if err := configureLogging(cfg); err != nil {
			logrus.WithError(err).Fatal("Failed to configure logging")
		}

		db := mustOpenDB(cfg)
		defer db.Close()

		if err := migrations.Apply(context.Background(), db); err != nil {
			logrus.WithError(err).Fatal("Schema migration failed")
		}
		logrus.Info("Schema migration applied")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

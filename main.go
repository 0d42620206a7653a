package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/config"
	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/store"
	"github.com/kmorozov/bibliotek/store/db"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "bibliotek",
		Short: "Bibliotek is a multi-library book catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			d, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error opening database", zap.Error(err))
				return err
			}
			defer d.Close()
			if err := d.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return err
			}

			s := store.NewStore(d)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return err
			}

			log.Info("Catalog ready", zap.String("dsn", config.Opts.DSN))
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (TOML)")

	cobra.OnInitialize(func() {
		if _, err := config.GetConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "Error loading config:", err)
			os.Exit(1)
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				fmt.Fprintln(os.Stderr, "Error parsing config file:", err)
				os.Exit(1)
			}
		}
		log.Logger = log.NewLogger()
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	if log.Logger != nil {
		defer log.Logger.Sync()
	}
}

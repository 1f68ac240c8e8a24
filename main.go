// Digestly — landing page server for the Discord digest bot.
// Author: vesaa | License: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vesaa/digestly/internal/config"
	"github.com/vesaa/digestly/internal/pricing"
	"github.com/vesaa/digestly/internal/server"
)

const version = "v0.1.0"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "digestly",
		Short:        "Digestly — landing page and pricing for the Discord digest bot",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./config.yaml or ~/.digestly/config.yaml)")

	// boot loads config and prepares logging, the catalog and handler settings.
	boot := func() (*config.Config, error) {
		var (
			cfg *config.Config
			err error
		)
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if err := server.SetupLogging(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
		if err := server.Configure(cfg); err != nil {
			return nil, err
		}
		if err := server.InitDB(cfg); err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
		return cfg, nil
	}

	// ── serve subcommand ──────────────────────────────────────────────────────
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page, pricing API and admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := boot()
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.HTTPPort)
			srv := &http.Server{Addr: addr, Handler: server.NewEngine()}

			log := logrus.WithField("component", "main")
			log.WithFields(logrus.Fields{"addr": addr, "version": version}).Info("digestly listening")
			if cfg.AdminPassHash == "" {
				log.Warn("admin_pass_hash not set; using plaintext admin_pass")
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-quit:
				log.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	// ── render subcommand ─────────────────────────────────────────────────────
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the landing page once, for static export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := boot(); err != nil {
				return err
			}
			billing, _ := cmd.Flags().GetString("billing")
			mode, err := pricing.ParseBillingMode(billing)
			if err != nil {
				return err
			}
			plans, err := server.ListPlans()
			if err != nil {
				return fmt.Errorf("loading plans: %w", err)
			}

			var out io.Writer = cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return server.RenderPage(out, plans, mode)
		},
	}
	renderCmd.Flags().String("billing", "monthly", "Billing mode to render: monthly or yearly")
	renderCmd.Flags().String("out", "", "Write to file instead of stdout")

	// ── hash-password subcommand ──────────────────────────────────────────────
	hashCmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for admin_pass_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := server.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print Digestly version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Digestly %s\n", version)
		},
	}

	root.AddCommand(serveCmd, renderCmd, hashCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kpi-api/internal/auth"
	"kpi-api/internal/config"
	"kpi-api/internal/database"
	"kpi-api/internal/handlers"
	"kpi-api/internal/i18n"
	"kpi-api/internal/logger"
	"kpi-api/internal/metrics"
	"kpi-api/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the API version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kpi-api version %d\n", config.FromEnv().App.Version)
	},
}

var hashPINCmd = &cobra.Command{
	Use:   "hash-pin <pin>",
	Short: "Print a bcrypt hash for the pin_hash column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := auth.HashPIN(args[0])
		if err != nil {
			return err
		}
		fmt.Println(h)
		return nil
	},
}

var rootCmd = &cobra.Command{
	Use:   "kpi-api",
	Short: "KPI employee identity and duty rounds API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (overrides CONFIG_FILE)")
	rootCmd.AddCommand(versionCmd, hashPINCmd)
}

func run(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting kpi-api", zap.Stringer("config", cfg))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	verifier, err := auth.NewVerifier(cfg.Auth.PINMode)
	if err != nil {
		return err
	}
	tr, err := i18n.New(cfg.App.DefaultLang)
	if err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	store := database.NewStore(db, cfg.Database.QueryTimeout)

	var m *metrics.Metrics
	opts := handlers.Options{
		Location:     loc,
		FeatureFlags: cfg.App.FeatureFlags,
		Version:      cfg.App.Version,
	}
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
		store = store.WithObserver(m)
		opts.Recorder = m
	}

	h := handlers.New(store, auth.NewChecker(verifier), tr, log, opts)
	router := server.NewRouter(cfg, server.Deps{
		Handler:    h,
		Translator: tr,
		Metrics:    m,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

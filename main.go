package main

import (
	"burnshop_server/api"
	"burnshop_server/config"
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/services"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.GetConfig()
	logger := config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}
	defer func() {
		if err := database.CloseInstance(); err != nil {
			logger.Error("Failed to close database", gecho.Field("error", err))
		}
	}()

	db := database.GetInstance()
	sm := services.NewServiceManager(logger, cfg, db, lib.RealClock{})
	defer sm.CacheService.Close()

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := runSeed(logger, services.NewSeedService(logger, db, lib.RealClock{}, sm), os.Args[2:]); err != nil {
			logger.Error("Seeding failed", gecho.Field("error", err))
			os.Exit(1)
		}
		return
	}

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, sm, config.GetLogLevel()),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", gecho.Field("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", gecho.Field("error", err))
	}
}

// runSeed fills the database with demo data: burnshop_server seed [-admin-password pw] [-random-seed n]
func runSeed(logger *gecho.Logger, seeder *services.SeedService, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	adminPassword := fs.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "Password for the admin account; empty skips it")
	randomSeed := fs.Uint64("random-seed", 1, "Seed for the generated prices, ratings and assignments")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := seeder.Seed(ctx, services.SeedOptions{
		AdminPassword: *adminPassword,
		RandomSeed:    *randomSeed,
	})
	if err != nil {
		return err
	}

	logger.Info("Seed complete", gecho.Field("report", report))
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/theoremus-urban-solutions/campusmap/campus"
	"github.com/theoremus-urban-solutions/campusmap/config"
	"github.com/theoremus-urban-solutions/campusmap/internal"
	"github.com/theoremus-urban-solutions/campusmap/server"
)

func main() {
	mode := flag.String("mode", "serve", "serve|repl|oneshot")
	query := flag.String("query", "", "building name to search for in oneshot mode")
	caseSensitive := flag.Bool("case-sensitive", false, "match building names case-sensitively (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
	}
	internal.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Config
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "case-sensitive" {
			cfg.Search.CaseSensitive = *caseSensitive
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := campus.Load(ctx, cfg)
	if err != nil {
		slog.Error("failed to load campus data", "error", err)
		os.Exit(1)
	}

	switch *mode {
	case "serve":
		configureGin()
		if err := serve(ctx, svc, cfg); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case "repl":
		c := newConsole(os.Stdout, svc, cfg.Search.CaseSensitive)
		runREPL(ctx, c, svc)
	case "oneshot":
		c := newConsole(os.Stdout, svc, cfg.Search.CaseSensitive)
		c.printStats()
		c.search(ctx, *query)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

// configureGin switches gin to release mode unless GIN_MODE picks one
func configureGin() {
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
}

func serve(ctx context.Context, svc *campus.Service, cfg config.AppConfig) error {
	srv := server.New(svc, cfg)
	errc := srv.Start()
	select {
	case err := <-errc:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

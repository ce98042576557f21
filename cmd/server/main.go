package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/smartcity/aqdash/internal/app"
	"github.com/smartcity/aqdash/internal/config"
	"github.com/smartcity/aqdash/internal/logger"
)

func main() {
	cfgFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Configuration
	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	slogger := logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, slogger)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Printf("Server error: %v", err)
		stop()
		a.Close()
		os.Exit(1)
	}
}

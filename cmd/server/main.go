package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/database"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/server"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/config"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
)

const serviceVersion = "1.0.0"

func main() {
	var (
		configFile = flag.String("config", "", "Path to configuration file")
		host       = flag.String("host", "", "Server host (overrides config)")
		port       = flag.Int("port", 0, "Server port (overrides config)")
		logLevel   = flag.String("log-level", "", "Log level (overrides config)")
		version    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *version {
		fmt.Printf("text-analysis server v%s\n", serviceVersion)
		os.Exit(0)
	}

	cfg := server.DefaultConfig()
	loader := config.NewLoader("")
	if err := loader.Load(*configFile, cfg); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	appLog := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLogLevel(cfg.LogLevel),
		Format:  logger.ParseLogFormat(cfg.LogFormat),
		Service: "text-analysis",
	})

	db, err := database.New(cfg.Database)
	if err != nil {
		appLog.Fatal("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Connect(ctx); err != nil {
		cancel()
		appLog.Fatal("Failed to connect to database: %v", err)
	}
	cancel()

	srv := server.New(cfg, db, appLog)
	if err := srv.Run(); err != nil {
		appLog.Fatal("Server error: %v", err)
	}
}

package main

import (
	"log"
	"net"

	"ksfit/adapters/analysis"
	"ksfit/internal/config"
	"ksfit/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := analysis.NewClient(appConfig.Analysis)
	log.Printf("Analysis service: %s (timeout %s)", client.Endpoint(), describeTimeout(appConfig))

	server, err := ui.NewServer(appConfig, client)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	addr := net.JoinHostPort("", appConfig.Server.Port)
	if err := server.Start(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func describeTimeout(cfg *config.Config) string {
	if cfg.Analysis.Timeout == 0 {
		return "none"
	}
	return cfg.Analysis.Timeout.String()
}

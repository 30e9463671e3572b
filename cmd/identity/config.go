package main

import (
	"log"
	"os"

	"casavista-listings/pkg/config"
	"casavista-listings/pkg/logger"

	"github.com/joho/godotenv"
)

// load environment variables, configuration and the logger, in that order.
// The logger level comes from the config file, so config loads first and any
// failure before that point goes through the stdlib logger.
func LoadConfiguration() *config.Config {
	loadEnvironment()
	cfg := loadConfigFile()
	logger.InitLogger(os.Stdout, cfg.Logging.Level)
	return cfg
}

// load environment variables from .env file
func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}
}

// load the application configuration from a YAML file
func loadConfigFile() *config.Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The shared config only insists on what both services need. Tokens are
	// minted here, so a missing signing secret has to stop this binary.
	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("JWT_SECRET_KEY is required for the identity service")
	}

	return cfg
}

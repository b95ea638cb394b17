// Package config provides configuration management for the parts finder service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, JWT secret, inventory sync token, CORS origins)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings for part images
//   - Log: Logging level and format
//
// Defaults are declared as `default` struct tags on each partial config and bound
// into Viper through reflection, so every key is visible to AutomaticEnv.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		MonitoringPort     int      `mapstructure:"monitoring_port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Billing struct {
		// Fixed civil-time offset for due-date and fine math; the council
		// operates in a single timezone and the server may not.
		UTCOffsetHours   int    `mapstructure:"utc_offset_hours"`
		InvoiceDueInDays int    `mapstructure:"invoice_due_in_days"`
		WasteServiceName string `mapstructure:"waste_service_name"`
	} `mapstructure:"billing"`

	Storage struct {
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"storage"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.monitoring_port", 9090)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "council_db")
	v.SetDefault("billing.utc_offset_hours", 5)
	v.SetDefault("billing.invoice_due_in_days", 14)
	v.SetDefault("billing.waste_service_name", "Waste collection service")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Object storage credentials come from the environment, never the file
	if endpoint := os.Getenv("STORAGE_ENDPOINT"); endpoint != "" {
		cfg.Storage.Endpoint = endpoint
	}
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		cfg.Storage.Bucket = bucket
	}
	if key := os.Getenv("STORAGE_ACCESS_KEY"); key != "" {
		cfg.Storage.AccessKey = key
	}
	if secret := os.Getenv("STORAGE_SECRET_KEY"); secret != "" {
		cfg.Storage.SecretKey = secret
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "auto"
	}

	return &cfg
}

package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the storefront API.
type Config struct {
	Env      string
	Port     string
	MongoURL string
	MongoDB  string
	RedisURL string

	JWTSecret string

	// CloudinaryURL enables product image uploads when set.
	CloudinaryURL string

	// SMTP settings; when incomplete the service falls back to the log-only
	// mail sender.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

// LoadConfig loads environment variables into a Config and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:           os.Getenv("ENV"),
		Port:          os.Getenv("PORT"),
		MongoURL:      os.Getenv("MONGO_URL"),
		MongoDB:       os.Getenv("MONGO_DB"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURL == "" {
		cfg.MongoURL = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "shopswift"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// SMTPConfigured reports whether every SMTP setting is present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	WizardSessionTTL time.Duration

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3UseSSL    bool
	S3PublicURL string

	PostalLookupURL string
	WhatsAppNumber  string
	CORSOrigins     []string
	StaticDir       string
}

// Load reads .env when present, then the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "production"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTIssuer:       getEnv("JWT_ISSUER", "octorlink"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3Bucket:        getEnv("S3_BUCKET", "app-icons"),
		S3Region:        os.Getenv("S3_REGION"),
		S3PublicURL:     os.Getenv("S3_PUBLIC_URL"),
		PostalLookupURL: getEnv("POSTAL_LOOKUP_URL", "https://viacep.com.br/ws"),
		WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "5573982264379"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		StaticDir:       os.Getenv("STATIC_DIR"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.WizardSessionTTL, err = time.ParseDuration(getEnv("WIZARD_SESSION_TTL", "2h")); err != nil {
		return nil, fmt.Errorf("invalid WIZARD_SESSION_TTL: %w", err)
	}
	if cfg.S3UseSSL, err = strconv.ParseBool(getEnv("S3_USE_SSL", "true")); err != nil {
		return nil, fmt.Errorf("invalid S3_USE_SSL: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// IsDevelopment selects the human-readable logger
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ObjectStoreEnabled reports whether icon uploads can be served
func (c *Config) ObjectStoreEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

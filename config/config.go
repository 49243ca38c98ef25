package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all runtime configuration. Values come from the
// environment (optionally seeded from a .env file); the Places API key in
// particular must never be compiled in.
type AppConfig struct {
	Port      string
	AWSRegion string

	S3Bucket string

	PlacesAPIKey      string
	PlacesBaseURL     string
	PlacesMinInterval time.Duration

	ExternalCallTimeout time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return AppConfig{
		Port:                getEnv("PORT", "8080"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:            getEnv("S3_BUCKET_NAME", "playdates-photos"),
		PlacesAPIKey:        getEnv("PLACES_API_KEY", ""),
		PlacesBaseURL:       getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api"),
		PlacesMinInterval:   getEnvAsDuration("PLACES_MIN_INTERVAL", 200*time.Millisecond),
		ExternalCallTimeout: getEnvAsDuration("EXTERNAL_CALL_TIMEOUT", 10*time.Second),
		ReadTimeout:         getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:        getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects every environment knob the storefront consumes. All
// third-party keys are optional: a missing Razorpay key selects the mock
// gateway, a missing Sentry DSN disables error reporting, and so on.
type Config struct {
	Port        string
	Environment string
	SiteURL     string
	BackendURL  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	MongoURI    string
	MongoDBName string

	RazorpayKeyID     string
	RazorpayKeySecret string

	ShiprocketBaseURL   string
	ShiprocketEmail     string
	ShiprocketPassword  string
	PickupLocationID    int
	CourierFetchDelayMS int

	JWTSecret string
	SentryDSN string
	GA4ID     string
	Release   string
}

// Load reads .env when present (best effort, matching the frontend's
// optional env files) and falls back to defaults for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	pickupLocation, _ := strconv.Atoi(getEnvOrDefault("SHIPROCKET_PICKUP_LOCATION_ID", "19334183"))
	courierDelay, _ := strconv.Atoi(getEnvOrDefault("SHIPMENT_COURIER_FETCH_DELAY_MS", "3000"))

	return &Config{
		Port:        getEnvOrDefault("PORT", "4000"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
		SiteURL:     getEnvOrDefault("SITE_URL", "https://www.coverghar.in"),
		BackendURL:  getEnvOrDefault("BACKEND_URL", "http://localhost:4000"),

		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getEnvOrDefault("DB_USER", "postgres"),
		DBPassword: getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:     getEnvOrDefault("DB_NAME", "storefront_db"),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MongoURI:    getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnvOrDefault("MONGO_DB_NAME", "storefront"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		ShiprocketBaseURL:   getEnvOrDefault("SHIPROCKET_BASE_URL", "https://apiv2.shiprocket.in/v1/external"),
		ShiprocketEmail:     os.Getenv("SHIPROCKET_EMAIL"),
		ShiprocketPassword:  os.Getenv("SHIPROCKET_PASSWORD"),
		PickupLocationID:    pickupLocation,
		CourierFetchDelayMS: courierDelay,

		JWTSecret: os.Getenv("JWT_SECRET"),
		SentryDSN: os.Getenv("SENTRY_DSN"),
		GA4ID:     os.Getenv("GA4_ID"),
		Release:   getEnvOrDefault("APP_VERSION", "1.0.0"),
	}
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	AppPort        string        // HTTP listen port
	JWTSecret      string        // Session token signing key
	RedisAddr      string        // Redis server address; empty disables caching
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	GeocodeBaseURL string        // Reverse geocoding endpoint; empty disables geocoding
	SweepInterval  time.Duration // Task expiry sweep interval
	AdminEmail     string        // Registration with this email gets the admin role
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables, reading a
// .env file first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	sweep := time.Minute
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			sweep = d
		}
	}
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	geocode := os.Getenv("GEOCODE_BASE_URL")
	if geocode == "" {
		geocode = "https://nominatim.openstreetmap.org"
	}
	return &Config{
		AppPort:        port,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      os.Getenv("REDIS_PASS"),
		RedisDB:        redisDB,
		GeocodeBaseURL: geocode,
		SweepInterval:  sweep,
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		IsProd:         os.Getenv("IS_PROD") == "true",
	}
}

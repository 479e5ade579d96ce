package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	AWSRegion  string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	SMTPFromName string

	// Weather provider
	WeatherAPIKey  string
	WeatherBaseURL string
	CourtLatitude  float64
	CourtLongitude float64

	// Firebase service account used to verify ID tokens
	FirebaseCredentialsFile string

	// CORS
	AllowedOrigins string

	// Linked from notification emails
	WebsiteURL string
}

func Load() *Config {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("❌ Invalid SMTP_PORT: %v", err)
		}
		smtpPort = p
	}

	return &Config{
		ServerPort: port,
		AWSRegion:  getEnv("AWS_REGION", "us-east-1"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMTPFrom:     getEnv("SMTP_FROM", "games@burlingtonballers.com"),
		SMTPFromName: "Burlington Ballers",

		WeatherAPIKey:  os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		// Burlington, MA, the home courts
		CourtLatitude:  getEnvFloat("COURT_LAT", 42.5047),
		CourtLongitude: getEnvFloat("COURT_LON", -71.2006),

		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		WebsiteURL: getEnv("WEBSITE_URL", "www.burlingtonballers.com"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			log.Fatalf("❌ Invalid %s: %v", key, err)
		}
		return f
	}
	return fallback
}

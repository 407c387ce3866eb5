package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string

	JWTSecret string

	// AI provider credentials. Every outbound client receives its key from
	// here; nothing is hardcoded in the packages that make the calls.
	MistralAPIKey  string
	MistralBaseURL string
	GeminiAPIKey   string
	OCRSpaceAPIKey string

	// Model selection
	MistralVisionModel string
	MistralParseModel  string
	GeminiModel        string

	// Geo services
	OpenRouteAPIKey string
	OpenRouteURL    string
	PincodeAPIURL   string
	GeocoderURL     string

	// Default OCR provider: mistral, gemini, or ocrspace
	OCRProvider string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		MistralAPIKey:      os.Getenv("MISTRAL_API_KEY"),
		MistralBaseURL:     os.Getenv("MISTRAL_BASE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		OCRSpaceAPIKey:     os.Getenv("OCRSPACE_API_KEY"),
		MistralVisionModel: os.Getenv("MISTRAL_VISION_MODEL"),
		MistralParseModel:  os.Getenv("MISTRAL_PARSE_MODEL"),
		GeminiModel:        os.Getenv("GEMINI_MODEL"),
		OpenRouteAPIKey:    os.Getenv("OPENROUTE_API_KEY"),
		OpenRouteURL:       os.Getenv("OPENROUTE_API_URL"),
		PincodeAPIURL:      os.Getenv("PINCODE_API_URL"),
		GeocoderURL:        os.Getenv("GEOCODER_API_URL"),
		OCRProvider:        os.Getenv("OCR_PROVIDER"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.MistralBaseURL == "" {
		cfg.MistralBaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.MistralVisionModel == "" {
		cfg.MistralVisionModel = "pixtral-12b-2409"
	}
	if cfg.MistralParseModel == "" {
		cfg.MistralParseModel = "mistral-large-latest"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash-exp"
	}
	if cfg.OpenRouteURL == "" {
		cfg.OpenRouteURL = "https://api.openrouteservice.org"
	}
	if cfg.PincodeAPIURL == "" {
		cfg.PincodeAPIURL = "https://api.postalpincode.in"
	}
	if cfg.GeocoderURL == "" {
		cfg.GeocoderURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.OCRProvider == "" {
		cfg.OCRProvider = "mistral"
	}

	return cfg
}

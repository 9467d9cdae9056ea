package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT           string
	DB_URL         string
	APP_SECRET_KEY string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	STRIPE_PRICE_ID_PRO   string
	APP_BASE_URL          string

	DEEPSEEK_API_KEY string
	DEEPSEEK_MODEL   string
	DEEPSEEK_URL     string
	WHISPER_URL      string

	CREATOR_EMAIL string
	CORS_ORIGIN   string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = getEnv("DB_URL", "vividmedi.db")
	APP_SECRET_KEY = mustEnv("APP_SECRET_KEY")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")
	STRIPE_PRICE_ID_PRO = getEnv("STRIPE_PRICE_ID_PRO", "")
	APP_BASE_URL = strings.TrimRight(getEnv("APP_BASE_URL", "https://www.vividmedi.com"), "/")

	DEEPSEEK_API_KEY = getEnv("DEEPSEEK_API_KEY", "")
	DEEPSEEK_MODEL = getEnv("DEEPSEEK_MODEL", "deepseek-chat")
	DEEPSEEK_URL = getEnv("DEEPSEEK_URL", "https://api.deepseek.com/v1/chat/completions")
	WHISPER_URL = getEnv("WHISPER_URL", "")

	CREATOR_EMAIL = strings.ToLower(strings.TrimSpace(getEnv("CREATOR_EMAIL", "")))
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	validateStripe()
}

// validateStripe fails at startup instead of letting entitlement updates
// silently stop applying. If billing is enabled at all, every Stripe value
// must be present, and the price id must be a real price_ id rather than a
// payment link or URL pasted from the dashboard.
func validateStripe() {
	if STRIPE_SECRET_KEY == "" && STRIPE_WEBHOOK_SECRET == "" && STRIPE_PRICE_ID_PRO == "" {
		log.Println("Stripe not configured; billing endpoints will refuse requests.")
		return
	}
	if STRIPE_SECRET_KEY == "" {
		log.Fatal("STRIPE_SECRET_KEY is required when Stripe is configured")
	}
	if STRIPE_WEBHOOK_SECRET == "" {
		log.Fatal("STRIPE_WEBHOOK_SECRET is required when Stripe is configured")
	}
	if STRIPE_PRICE_ID_PRO == "" {
		log.Fatal("STRIPE_PRICE_ID_PRO is required when Stripe is configured")
	}
	if strings.HasPrefix(STRIPE_PRICE_ID_PRO, "plink_") || strings.HasPrefix(STRIPE_PRICE_ID_PRO, "http") {
		log.Fatalf("STRIPE_PRICE_ID_PRO must be a price_ id, not a payment link or URL: %s", STRIPE_PRICE_ID_PRO)
	}
	if !strings.HasPrefix(STRIPE_PRICE_ID_PRO, "price_") {
		log.Fatalf("STRIPE_PRICE_ID_PRO must start with 'price_': %s", STRIPE_PRICE_ID_PRO)
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("ℹ️  No .env file found, continuing...")
	}
}

// EnvOr returns the environment variable value or the fallback when it is
// unset. Used to seed flag defaults (ORASCHEMAGEN_OUTPUT_DIR,
// ORASCHEMAGEN_ENCODING).
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads a .env file from the working directory into the
// process environment. Variables already set are left untouched and a
// missing file is not an error.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// Redact returns a form of an API key that is safe to log
func Redact(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}

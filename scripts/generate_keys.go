//go:build ignore

// This script prints a console token secret and admin API keys for a .env file.
// Run with: go run scripts/generate_keys.go [-api-keys 2]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
)

func generateSecureKey(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func mustKey(length int, what string) string {
	key, err := generateSecureKey(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
		os.Exit(1)
	}
	return key
}

func main() {
	apiKeyCount := flag.Int("api-keys", 1, "number of admin API keys to generate")
	flag.Parse()

	// HS256 secret for console tokens (32 bytes = 256 bits)
	consoleSecret := mustKey(32, "console token secret")

	apiKeys := make([]string, 0, *apiKeyCount)
	for i := 0; i < *apiKeyCount; i++ {
		apiKeys = append(apiKeys, mustKey(24, "API key"))
	}

	fmt.Println("# Console tokens (shop console quotes)")
	fmt.Printf("CONSOLE_JWT_SECRET=%s\n", consoleSecret)
	fmt.Println()
	fmt.Println("# Admin API keys (pricing config and console token routes)")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("API_KEYS=%s\n", strings.Join(apiKeys, ","))
}

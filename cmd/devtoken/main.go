// Command devtoken mints a bearer token for local API testing.
//
// Usage:
//
//	devtoken -member-id <uuid> -member-number MV-10001 [-minutes 1440]
//
// The signing secret is read from DEV_JWT_SECRET (falls back to the default
// used by the server in dev mode).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"motorvault/internal/pkg/jwt"

	"github.com/joho/godotenv"
)

func main() {
	memberID := flag.String("member-id", "", "member UUID to embed in the token")
	memberNumber := flag.String("member-number", "", "member number to embed in the token")
	minutes := flag.Int("minutes", 1440, "token lifetime in minutes")
	flag.Parse()

	if *memberID == "" || *memberNumber == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	secret := os.Getenv("DEV_JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	token, err := jwt.GenerateAccessToken(*memberID, *memberNumber, secret, *minutes)
	if err != nil {
		log.Fatalf("❌ Failed to generate token: %v", err)
	}

	fmt.Println(token)
}

// Command tokengen mints a bearer token for the API when auth is enabled.
// Tokens are signed with the configured secret; hand the output to clients
// out of band.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"medscribe/internal/config"
)

func main() {
	subject := flag.String("subject", "reviewer", "token subject (client identity)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   *subject,
		Issuer:    cfg.Auth.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Auth.TokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Auth.Secret))
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Println(signed)
}

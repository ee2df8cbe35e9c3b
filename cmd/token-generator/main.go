// Command token-generator prints a bearer token accepted by the library API
// when it runs with the same LIBRARY_AUTH_JWT_SECRET.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "librarian", "Token subject")
	flag.Parse()

	token, err := generate(context.Background(), *subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func generate(ctx context.Context, subject string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if !cfg.Auth.Enabled() {
		return "", errors.New("auth is disabled: set " + config.EnvPrefix + "_AUTH_JWT_SECRET")
	}

	svc, err := auth.NewJWTService(cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute)
	if err != nil {
		return "", err
	}
	return svc.GenerateToken(ctx, subject)
}

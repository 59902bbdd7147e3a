package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mflix/pkg/config"
	"mflix/pkg/jwt"
)

// Prints a token for the movie write routes, signed with AUTH_JWT_SECRET.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	editor := flag.String("editor", "", "name recorded as the token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	token, err := jwt.NewJWTProvider(cfg.Auth.JWTSecret, *ttl).GenerateEditorToken(*editor)
	if err != nil {
		logger.Error("cannot generate token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

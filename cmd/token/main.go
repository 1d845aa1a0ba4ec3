// Command token mints a bearer token for local runs of the library API.
//
//	go run ./cmd/token -user 8f0e3c2e-7a51-4f0c-b1d2-6e4a9c0d2b02 -role librarian
package main

import (
	"flag"
	"fmt"
	stdLog "log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/library-management/pkg/auth"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	var cfg auth.Config
	if err := envconfig.Process("", &cfg); err != nil {
		stdLog.Fatal("envconfig ", err)
	}

	userID := flag.String("user", "", "user id (uuid)")
	role := flag.String("role", "member", "member or librarian")
	ttl := flag.Duration("ttl", cfg.TokenTTL, "token lifetime")
	flag.Parse()

	if _, err := uuid.Parse(*userID); err != nil {
		stdLog.Fatalf("invalid -user %q: %v", *userID, err)
	}
	if *role != "member" && *role != "librarian" {
		stdLog.Fatalf("invalid -role %q", *role)
	}
	if cfg.JWTSecret == "" {
		stdLog.Fatal("JWT_SECRET is required")
	}

	token, err := auth.SignToken(auth.Profile{UserID: *userID, Role: *role}, *ttl, []byte(cfg.JWTSecret))
	if err != nil {
		stdLog.Fatal("sign ", err)
	}
	fmt.Println(auth.Bearer + token)
}

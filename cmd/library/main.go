package main

import (
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Astemirdum/library-management/library/app"
	"github.com/Astemirdum/library-management/library/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithWriteTimeout(time.Minute),
	)
	if cfg.Auth.JWTSecret == "" {
		stdLog.Fatal("JWT_SECRET is required")
	}

	app.Run(cfg)
}

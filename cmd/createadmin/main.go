// Command createadmin provisions an admin account.  It is idempotent:
// running it against a database that already has the admin email is a
// no-op, so it is safe to call from deploy scripts on every rollout.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/house-price-api/internal/config"
	"github.com/iliyamo/house-price-api/internal/database"
	"github.com/iliyamo/house-price-api/internal/repository"
	"github.com/iliyamo/house-price-api/internal/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := envOr("ADMIN_EMAIL", "admin@example.com")
	password := envOr("ADMIN_PASSWORD", "admin123")
	role := envOr("ADMIN_ROLE", "superadmin")

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	hash, err := utils.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := repository.NewAdminRepo(db).CreateIfAbsent(ctx, email, hash, role)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	if created {
		log.Printf("admin %s created (role=%s)", email, role)
	} else {
		log.Printf("admin %s already exists, nothing to do", email)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

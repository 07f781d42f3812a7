// Command seed-admin provisions or updates a back-office account.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/storage/postgres"
	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/observability/logging"
	"github.com/aniket045123/craftmyresume/internal/service/auth"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

func main() {
	email := flag.String("email", "", "admin email address")
	name := flag.String("name", "", "display name")
	role := flag.String("role", string(domain.AdminRoleAdmin), "owner, admin or staff")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	adminRole := domain.AdminRole(*role)
	switch adminRole {
	case domain.AdminRoleOwner, domain.AdminRoleAdmin, domain.AdminRoleStaff:
	default:
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := postgres.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := postgres.NewAdminUserRepository(db, logger)
	user, err := repo.FindActiveByEmail(ctx, *email)
	if err != nil {
		logger.Fatal("Admin lookup failed", zap.Error(err))
	}
	if user == nil {
		user = &domain.AdminUser{
			ID:       uuid.NewString(),
			Email:    domain.NormalizeEmail(*email),
			IsActive: true,
		}
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Fatal("Failed to hash password", zap.Error(err))
	}
	user.PasswordHash = hash
	user.Role = adminRole
	if *name != "" {
		user.Name = *name
	}

	if err := repo.Save(ctx, user); err != nil {
		logger.Fatal("Failed to save admin", zap.Error(err))
	}
	logger.Info("Admin account ready",
		zap.String("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)
}

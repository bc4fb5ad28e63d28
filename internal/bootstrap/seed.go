package bootstrap

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/foc-sab/ctrlroom/internal/config"
	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser provisions the configured administrator account at startup.
// This replaces the usual "env-configured credentials checked at login time"
// shortcut: the admin is an ordinary stored user from the moment the server
// boots, and the login path has no special cases. Skipped entirely when no
// BOOTSTRAP_ADMIN_EMAIL is configured; an existing account is left untouched.
func SeedAdminUser(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	if cfg.BootstrapAdminEmail == "" {
		return nil
	}
	if cfg.BootstrapAdminPassword == "" {
		return errors.New("BOOTSTRAP_ADMIN_EMAIL is set but BOOTSTRAP_ADMIN_PASSWORD is empty")
	}

	email := strings.ToLower(cfg.BootstrapAdminEmail)

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("bootstrap admin %s already exists, skipping seed", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         cfg.BootstrapAdminName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("bootstrap admin %s provisioned", email)
	return nil
}

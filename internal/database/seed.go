// inventory-service/internal/database/seed.go

package database

import (
	"errors"
	"fmt"
	"log"

	"inventory-service/internal/config"
	"inventory-service/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedAdminUser creates the initial admin account if no admin exists yet.
// Idempotent: reruns are no-ops.
func seedAdminUser(db *gorm.DB, cfg *config.Config) error {
	var existing models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user %q", cfg.AdminUsername)
	return nil
}

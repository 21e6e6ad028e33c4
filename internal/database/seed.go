package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sasank-in/skin-disease/internal/auth"
	"github.com/sasank-in/skin-disease/internal/config"
	"github.com/sasank-in/skin-disease/internal/models"

	"gorm.io/gorm"
)

// SeedDemoUsers creates the demo user and demo admin accounts when seeding is
// enabled. Existing accounts are left untouched.
func SeedDemoUsers(db *gorm.DB, hasher *auth.Hasher, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}
	seeds := []struct {
		email, password, first string
		role                   models.Role
	}{
		{cfg.UserEmail, cfg.UserPassword, "Demo", models.RoleUser},
		{cfg.AdminEmail, cfg.AdminPassword, "Admin", models.RoleAdmin},
	}
	for _, s := range seeds {
		email := strings.ToLower(strings.TrimSpace(s.email))
		if email == "" || s.password == "" {
			continue
		}
		var existing models.User
		err := db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("look up %s: %w", email, err)
		}
		hash, err := hasher.Hash(s.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		u := models.User{
			FirstName:      s.first,
			LastName:       "User",
			Email:          email,
			HashedPassword: hash,
			Role:           s.role,
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("create %s: %w", email, err)
		}
		log.Printf("seeded %s account %s", s.role, email)
	}
	return nil
}

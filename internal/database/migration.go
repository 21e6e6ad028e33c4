package database

import (
	"fmt"
	"time"

	"github.com/sasank-in/skin-disease/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate brings the schema up to date. Existing tables are only ever
// extended: missing user columns are added, nothing is dropped or altered.
func AutoMigrate(db *gorm.DB) error {
	tables := []interface{}{&models.Feedback{}}
	extended, err := extendUsers(db)
	if err != nil {
		return err
	}
	if !extended {
		tables = append(tables, &models.User{})
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// extendUsers adds the columns an older users table lacks and backfills
// them. It reports false when there is no users table yet.
func extendUsers(db *gorm.DB) (bool, error) {
	m := db.Migrator()
	if !m.HasTable(&models.User{}) {
		return false, nil
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&models.User{}); err != nil {
		return false, fmt.Errorf("parse users schema: %w", err)
	}
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" || m.HasColumn(&models.User{}, field.DBName) {
			continue
		}
		if err := m.AddColumn(&models.User{}, field.Name); err != nil {
			return false, fmt.Errorf("add users.%s: %w", field.DBName, err)
		}
	}

	// rows created before roles existed become regular users
	if err := db.Model(&models.User{}).
		Where("role IS NULL OR role = ''").
		UpdateColumn("role", models.RoleUser).Error; err != nil {
		return false, fmt.Errorf("backfill users.role: %w", err)
	}
	now := time.Now()
	for _, col := range []string{"created_at", "updated_at"} {
		if err := db.Model(&models.User{}).
			Where(col + " IS NULL").
			UpdateColumn(col, now).Error; err != nil {
			return false, fmt.Errorf("backfill users.%s: %w", col, err)
		}
	}
	return true, nil
}

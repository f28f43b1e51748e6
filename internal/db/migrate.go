package db

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/models"
)

type schemaMigration struct {
	Version   uint `gorm:"primaryKey"`
	AppliedAt int64 `gorm:"autoCreateTime"`
}

type migration struct {
	version uint
	name    string
	run     func(tx *gorm.DB) error
}

// Ordered data migrations applied exactly once each, after AutoMigrate and
// before the HTTP listener starts. A failure aborts startup.
var migrations = []migration{
	{1, "seed roles", seedRoles},
	{2, "seed categories", seedCategories},
	{3, "seed default users", seedDefaultUsers},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.Order{},
		&models.Feedback{},
		&models.AuditLog{},
		&schemaMigration{},
	); err != nil {
		return err
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).
			Where("version = ?", m.version).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.version}).Error
		}); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}

	return nil
}

// The numeric ids of the seed roles are load-bearing: authorization
// short-circuits on role_id 1 and 2.
func seedRoles(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := []models.Role{
		{ID: models.RoleIDAdmin, Name: "admin", Description: "Администратор системы с полным доступом"},
		{ID: models.RoleIDEmployee, Name: "employee", Description: "Сотрудник компании с ограниченным доступом"},
		{ID: models.RoleIDGuest, Name: "guest", Description: "Гость с минимальными правами"},
	}
	return tx.Create(&roles).Error
}

func seedCategories(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Частный сектор", Description: "Услуги для частных домов и участков"},
		{Name: "Промышленность", Description: "Услуги для промышленных предприятий"},
		{Name: "Утилизация", Description: "Услуги по утилизации отходов"},
		{Name: "Абонентское обслуживание", Description: "Регулярное обслуживание по графику"},
		{Name: "Консультации", Description: "Экспертные консультации и оценка"},
		{Name: "Экстренные вызовы", Description: "Срочные выезды и аварийные ситуации"},
	}
	return tx.Create(&categories).Error
}

func seedDefaultUsers(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username string
		email    string
		password string
		roleID   uint
	}{
		{"admin", "admin@test.com", "admin123", models.RoleIDAdmin},
		{"employee", "employee@test.com", "employee123", models.RoleIDEmployee},
		{"guest", "guest@test.com", "guest123", models.RoleIDGuest},
	}

	for _, d := range defaults {
		hashed, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     d.username,
			Email:        d.email,
			PasswordHash: string(hashed),
			RoleID:       d.roleID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

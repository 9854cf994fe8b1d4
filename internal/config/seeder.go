package config

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"recontrack/internal/adapters/persistence/models"
	"recontrack/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	if err := s.seedAdminUser(); err != nil {
		return err
	}
	return nil
}

// seedAdminUser creates the default administrator so a fresh install is
// usable. The password must be changed after first login.
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Name:     "Administrator",
		Password: hashedPassword,
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	logrus.Warn("Default admin account created (admin / admin123456) - change this password after first login")
	return nil
}

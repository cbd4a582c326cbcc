package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seeders against the given connection.
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedReport(); err != nil {
		return fmt.Errorf("failed to seed report: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default upsight_staff login from the
// ADMIN_USERNAME and ADMIN_PASSWORD environment variables.
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleUpsightStaff).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Staff user already exists, skipping...")
		return nil
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_USERNAME and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Username:     adminUsername,
		FirstName:    "System Administrator",
		PasswordHash: passwordHash,
		Role:         model.RoleUpsightStaff,
		IsActive:     true,
		TokenVersion: 0,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created staff user: %s\n", admin.Username)
	return nil
}

// SeedReport makes sure the landing-page counters row exists so the
// public report endpoint never serves an empty table.
func (s *Seeder) SeedReport() error {
	var count int64
	if err := s.db.Model(&model.Report{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Report row already exists, skipping...")
		return nil
	}

	if err := s.db.Create(&model.Report{}).Error; err != nil {
		return err
	}

	log.Println("✅ Created empty report counters row")
	return nil
}

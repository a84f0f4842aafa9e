package database

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions. Every step skips when its table already has rows.
func (s *Seeder) SeedAll() error {
	logger.Info().Msg("starting database seeding")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	if err := s.SeedNotifications(); err != nil {
		return fmt.Errorf("failed to seed notifications: %w", err)
	}

	if err := s.SeedFaculty(); err != nil {
		return fmt.Errorf("failed to seed faculty: %w", err)
	}

	logger.Info().Msg("database seeding completed")
	return nil
}

// SeedAdminUser creates the first admin from ADMIN_USERNAME / ADMIN_PASSWORD
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.Admin{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info().Msg("admin already exists, skipping")
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")

	if username == "" || password == "" {
		logger.Warn().Msg("ADMIN_USERNAME and ADMIN_PASSWORD not set, skipping admin creation")
		return nil
	}

	admin, err := UpsertAdmin(s.db, username, password, model.AdminRoleAdmin)
	if err != nil {
		return err
	}

	logger.Info().Str("username", admin.Username).Msg("created admin")
	return nil
}

// UpsertAdmin creates the admin or resets its password and role when the username exists
func UpsertAdmin(db *gorm.DB, username, password, role string) (*model.Admin, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = model.AdminRoleAdmin
	}

	var admin model.Admin
	err = db.Where("username = ?", username).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = model.Admin{Username: username, PasswordHash: passwordHash, Role: role}
		if err := db.Create(&admin).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		admin.PasswordHash = passwordHash
		admin.Role = role
		if err := db.Save(&admin).Error; err != nil {
			return nil, err
		}
	}

	return &admin, nil
}

// SeedCourses creates sample courses with one running batch each
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info().Int64("count", count).Msg("courses already exist, skipping")
		return nil
	}

	courses := []model.Course{
		{Title: "JEE Foundation", Description: "Two year classroom program for JEE Main and Advanced aspirants.", IsActive: true},
		{Title: "NEET Crash Course", Description: "Intensive revision program covering the full NEET syllabus.", IsActive: true},
		{Title: "Class 10 Board Prep", Description: "Concept building and board exam practice for Class 10 students.", IsActive: true},
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&courses).Error; err != nil {
			return err
		}

		start := time.Date(time.Now().Year(), time.April, 1, 0, 0, 0, 0, time.UTC)
		for _, c := range courses {
			batch := model.Batch{
				Name:      fmt.Sprintf("%s %d", c.Title, start.Year()),
				CourseID:  c.ID,
				StartDate: start,
				IsActive:  true,
			}
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}
		}

		logger.Info().Int("count", len(courses)).Msg("created sample courses")
		return nil
	})
}

// SeedNotifications creates a welcome announcement
func (s *Seeder) SeedNotifications() error {
	var count int64
	if err := s.db.Model(&model.Notification{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	notifications := []model.Notification{
		{Message: "Admissions open for the new academic session.", Type: model.NotificationTypeAnnouncement, IsActive: true},
	}

	return s.db.Create(&notifications).Error
}

// SeedFaculty creates placeholder leadership and teaching profiles
func (s *Seeder) SeedFaculty() error {
	var count int64
	if err := s.db.Model(&model.Faculty{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	faculty := []model.Faculty{
		{Name: "Director", Designation: "Founder & Director", Category: model.FacultyCategoryLeadership},
		{Name: "Physics Faculty", Designation: "Senior Faculty, Physics", Category: model.FacultyCategoryTeaching},
		{Name: "Chemistry Faculty", Designation: "Senior Faculty, Chemistry", Category: model.FacultyCategoryTeaching},
	}

	return s.db.Create(&faculty).Error
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}

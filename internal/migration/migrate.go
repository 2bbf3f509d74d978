package migration

import (
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all application tables. Existing tables
// are altered in place; missing ones are created.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Post{},
		&domain.CvEntry{},
		&domain.Connection{},
		&domain.Job{},
		&domain.Reaction{},
	)
}

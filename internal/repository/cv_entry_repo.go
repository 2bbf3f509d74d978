package repository

import (
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// CvEntryRepository CV projection storage. Performs no business
// validation; deduplication is the caller's responsibility.
type CvEntryRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) CvEntryRepository

	Create(entry *domain.CvEntry) error
	FindByProfile(profileID int64) ([]*domain.CvEntry, error)
	FindByProfileAndType(profileID int64, cvType domain.CvType) ([]*domain.CvEntry, error)
	FindByPostID(postID int64) ([]*domain.CvEntry, error)
	// DeleteByPostID removes every entry referencing the post; no-op
	// when none match
	DeleteByPostID(postID int64) error
}

type cvEntryRepository struct {
	db *gorm.DB
}

// NewCvEntryRepository creates a new CvEntryRepository
func NewCvEntryRepository(db *gorm.DB) CvEntryRepository {
	return &cvEntryRepository{db: db}
}

func (r *cvEntryRepository) WithTx(tx *gorm.DB) CvEntryRepository {
	return &cvEntryRepository{db: tx}
}

func (r *cvEntryRepository) Create(entry *domain.CvEntry) error {
	return r.db.Create(entry).Error
}

func (r *cvEntryRepository) FindByProfile(profileID int64) ([]*domain.CvEntry, error) {
	var entries []*domain.CvEntry
	err := r.db.
		Where("profile_id = ?", profileID).
		Order("type ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *cvEntryRepository) FindByProfileAndType(profileID int64, cvType domain.CvType) ([]*domain.CvEntry, error) {
	var entries []*domain.CvEntry
	err := r.db.
		Where("profile_id = ? AND type = ?", profileID, cvType).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *cvEntryRepository) FindByPostID(postID int64) ([]*domain.CvEntry, error) {
	var entries []*domain.CvEntry
	err := r.db.Where("post_id = ?", postID).Find(&entries).Error
	return entries, err
}

func (r *cvEntryRepository) DeleteByPostID(postID int64) error {
	return r.db.Where("post_id = ?", postID).Delete(&domain.CvEntry{}).Error
}

package repository

import (
	"errors"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// JobRepository job posting storage
type JobRepository interface {
	Create(job *domain.Job) error
	FindByID(id int64) (*domain.Job, error)
	ListAll() ([]*domain.Job, error)
	ListByEmployer(employerID int64) ([]*domain.Job, error)
	// AddApplicant appends the profile to the job's applicant list
	AddApplicant(job *domain.Job, applicant *domain.Profile) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *domain.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) FindByID(id int64) (*domain.Job, error) {
	var job domain.Job
	err := r.db.Preload("Applicants").Preload("Selected").First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListAll() ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := r.db.Preload("Applicants").Preload("Selected").
		Order("id DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListByEmployer(employerID int64) ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := r.db.Preload("Applicants").Preload("Selected").
		Where("employer_id = ?", employerID).
		Order("id DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) AddApplicant(job *domain.Job, applicant *domain.Profile) error {
	return r.db.Model(job).Association("Applicants").Append(applicant)
}

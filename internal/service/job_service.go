package service

import (
	"fmt"
	"time"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
)

const jobDateLayout = "2006-01-02"

// JobService manages job postings and applications
type JobService interface {
	CreateJob(req *domain.JobRequest) (*domain.Job, error)
	GetJob(jobID int64) (*domain.Job, error)
	ListJobs() ([]*domain.Job, error)
	ListJobsByEmployer(employerID int64) ([]*domain.Job, error)
	// Apply is idempotent; re-applying to the same job is a no-op
	Apply(jobID, profileID int64) (*domain.Job, error)
}

type jobService struct {
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
}

// NewJobService creates a new JobService
func NewJobService(jobs repository.JobRepository, profiles repository.ProfileRepository) JobService {
	return &jobService{jobs: jobs, profiles: profiles}
}

func (s *jobService) CreateJob(req *domain.JobRequest) (*domain.Job, error) {
	job := &domain.Job{
		Title:        req.Title,
		Position:     req.Position,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       domain.JobOpen,
		EmployerID:   req.EmployerID,
	}

	if req.DatePosted != "" {
		parsed, err := time.Parse(jobDateLayout, req.DatePosted)
		if err != nil {
			return nil, fmt.Errorf("%w: date_posted must be YYYY-MM-DD", common.ErrInvalidInput)
		}
		job.DatePosted = &parsed
	} else {
		now := time.Now()
		job.DatePosted = &now
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(jobDateLayout, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", common.ErrInvalidInput)
		}
		job.EndDate = &parsed
	}

	if err := s.jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) GetJob(jobID int64) (*domain.Job, error) {
	return s.jobs.FindByID(jobID)
}

func (s *jobService) ListJobs() ([]*domain.Job, error) {
	return s.jobs.ListAll()
}

func (s *jobService) ListJobsByEmployer(employerID int64) ([]*domain.Job, error) {
	return s.jobs.ListByEmployer(employerID)
}

func (s *jobService) Apply(jobID, profileID int64) (*domain.Job, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	for _, applicant := range job.Applicants {
		if applicant.ID == profileID {
			return job, nil
		}
	}

	profile, err := s.profiles.FindByID(profileID)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.AddApplicant(job, profile); err != nil {
		return nil, err
	}

	job.Applicants = append(job.Applicants, profile)
	return job, nil
}

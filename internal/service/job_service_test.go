package service

import (
	"testing"
	"time"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupJobService(t *testing.T) (JobService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewJobService(repository.NewJobRepository(db), repository.NewProfileRepository(db))

	require.NoError(t, db.Create(&domain.User{ID: 1, Name: "Initech HR", Email: "hr@initech.example", Password: "x", Role: domain.RoleEmployer}).Error)
	require.NoError(t, db.Create(&domain.User{ID: 2, Name: "Asha", Email: "asha@example.com", Password: "x", Role: domain.RoleUser}).Error)
	require.NoError(t, db.Create(&domain.Profile{ID: 7, UserID: 2}).Error)

	return svc, db
}

func TestCreateJob_ParsesDates(t *testing.T) {
	svc, _ := setupJobService(t)

	job, err := svc.CreateJob(&domain.JobRequest{
		Title:      "Backend Engineer",
		Position:   "Senior",
		DatePosted: "2026-08-01",
		EndDate:    "2026-09-01",
		EmployerID: 1,
	})

	require.NoError(t, err)
	assert.NotZero(t, job.ID)
	assert.Equal(t, domain.JobOpen, job.Status)
	require.NotNil(t, job.DatePosted)
	assert.Equal(t, "2026-08-01", job.DatePosted.Format("2006-01-02"))
	require.NotNil(t, job.EndDate)
	assert.Equal(t, "2026-09-01", job.EndDate.Format("2006-01-02"))
}

func TestCreateJob_DefaultsDatePosted(t *testing.T) {
	svc, _ := setupJobService(t)

	job, err := svc.CreateJob(&domain.JobRequest{Title: "Intern", EmployerID: 1})

	require.NoError(t, err)
	require.NotNil(t, job.DatePosted)
	assert.WithinDuration(t, time.Now(), *job.DatePosted, time.Minute)
	assert.Nil(t, job.EndDate)
}

func TestCreateJob_RejectsBadDate(t *testing.T) {
	svc, _ := setupJobService(t)

	_, err := svc.CreateJob(&domain.JobRequest{Title: "Intern", EmployerID: 1, DatePosted: "01/08/2026"})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestApply_Idempotent(t *testing.T) {
	svc, _ := setupJobService(t)

	job, err := svc.CreateJob(&domain.JobRequest{Title: "Backend Engineer", EmployerID: 1})
	require.NoError(t, err)

	applied, err := svc.Apply(job.ID, 7)
	require.NoError(t, err)
	assert.Len(t, applied.Applicants, 1)

	// re-applying does not duplicate the row
	again, err := svc.Apply(job.ID, 7)
	require.NoError(t, err)
	assert.Len(t, again.Applicants, 1)

	stored, err := svc.GetJob(job.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Applicants, 1)
	assert.Equal(t, int64(7), stored.Applicants[0].ID)
}

func TestApply_UnknownJobOrProfile(t *testing.T) {
	svc, _ := setupJobService(t)

	_, err := svc.Apply(999, 7)
	assert.ErrorIs(t, err, common.ErrJobNotFound)

	job, err := svc.CreateJob(&domain.JobRequest{Title: "Intern", EmployerID: 1})
	require.NoError(t, err)

	_, err = svc.Apply(job.ID, 999)
	assert.ErrorIs(t, err, common.ErrProfileNotFound)
}

func TestListJobsByEmployer(t *testing.T) {
	svc, db := setupJobService(t)
	require.NoError(t, db.Create(&domain.User{ID: 3, Name: "Globex HR", Email: "hr@globex.example", Password: "x", Role: domain.RoleEmployer}).Error)

	_, err := svc.CreateJob(&domain.JobRequest{Title: "Job A", EmployerID: 1})
	require.NoError(t, err)
	_, err = svc.CreateJob(&domain.JobRequest{Title: "Job B", EmployerID: 3})
	require.NoError(t, err)

	all, err := svc.ListJobs()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListJobsByEmployer(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Job A", mine[0].Title)
}

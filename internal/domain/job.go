package domain

import "time"

// JobStatus job posting state
type JobStatus string

// Job states
const (
	JobOpen   JobStatus = "OPEN"
	JobClosed JobStatus = "CLOSED"
)

// Job is an employer's posting. Applicants are profiles; selected
// applicants are the subset the employer picked.
type Job struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"column:title;size:255;not null" json:"title"`
	Position     string     `gorm:"column:position;size:255" json:"position"`
	Description  string     `gorm:"column:description;type:text" json:"description"`
	Requirements string     `gorm:"column:requirements;type:text" json:"requirements"`
	DatePosted   *time.Time `gorm:"column:date_posted" json:"date_posted,omitempty"`
	EndDate      *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Status       JobStatus  `gorm:"column:status;size:20;not null" json:"status"`
	EmployerID   int64      `gorm:"column:employer_id;index" json:"employer_id"`
	Employer     *User      `gorm:"foreignKey:EmployerID" json:"-"`
	Applicants   []*Profile `gorm:"many2many:job_applicants" json:"-"`
	Selected     []*Profile `gorm:"many2many:job_selected_applicants" json:"-"`
}

// TableName returns the table name
func (Job) TableName() string {
	return "jobs"
}

// JobRequest create payload
type JobRequest struct {
	Title        string `json:"title" binding:"required"`
	Position     string `json:"position"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	DatePosted   string `json:"date_posted"` // YYYY-MM-DD
	EndDate      string `json:"end_date"`    // YYYY-MM-DD
	EmployerID   int64  `json:"employer_id" binding:"required"`
}

// JobResponse API view of a job
type JobResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Position     string    `json:"position"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	DatePosted   string    `json:"date_posted,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
	Status       JobStatus `json:"status"`
	EmployerID   int64     `json:"employer_id"`
	ApplicantIDs []int64   `json:"applicant_ids"`
	SelectedIDs  []int64   `json:"selected_applicant_ids"`
}

// ToResponse converts a Job (with applicants preloaded) to its API view
func (j *Job) ToResponse() *JobResponse {
	resp := &JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Position:     j.Position,
		Description:  j.Description,
		Requirements: j.Requirements,
		Status:       j.Status,
		EmployerID:   j.EmployerID,
		ApplicantIDs: profileIDs(j.Applicants),
		SelectedIDs:  profileIDs(j.Selected),
	}
	if j.DatePosted != nil {
		resp.DatePosted = j.DatePosted.Format("2006-01-02")
	}
	if j.EndDate != nil {
		resp.EndDate = j.EndDate.Format("2006-01-02")
	}
	return resp
}

func profileIDs(profiles []*Profile) []int64 {
	ids := make([]int64, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	return ids
}

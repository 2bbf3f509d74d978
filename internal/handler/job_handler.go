package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/middleware"
	"github.com/postfolio/postfolio-backend/internal/service"
	"github.com/postfolio/postfolio-backend/pkg/ginutil"
)

// JobHandler handles HTTP requests for job postings
type JobHandler struct {
	service service.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(service service.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// CreateJob godoc
// @Summary      Create a job posting
// @Description  Employer-only (auth required)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.JobRequest  true  "Job posting"
// @Success      201  {object}  common.APIResponse{data=domain.JobResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req domain.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	// An employer may only post under their own identity
	if req.EmployerID != middleware.GetUserID(c) {
		common.ErrorResponse(c, 403, "Cannot post as another employer", nil)
		return
	}

	job, err := h.service.CreateJob(&req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, 400, "Invalid job fields", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to create job", err)
		return
	}

	common.CreatedResponse(c, job.ToResponse())
}

// GetJob godoc
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  common.APIResponse{data=domain.JobResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid job ID", err)
		return
	}

	job, err := h.service.GetJob(id)
	if err != nil {
		if errors.Is(err, common.ErrJobNotFound) {
			common.ErrorResponse(c, 404, "Job not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch job", err)
		return
	}

	common.SuccessResponse(c, job.ToResponse(), nil)
}

// ListJobs godoc
// @Summary      List job postings
// @Tags         jobs
// @Produce      json
// @Param        employer_id  query  int  false  "Filter by employer"
// @Success      200  {object}  common.APIResponse{data=[]domain.JobResponse}
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var jobs []*domain.Job
	var err error
	if employerID := ginutil.QueryInt(c, "employer_id", 0); employerID > 0 {
		jobs, err = h.service.ListJobsByEmployer(int64(employerID))
	} else {
		jobs, err = h.service.ListJobs()
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch jobs", err)
		return
	}

	resp := make([]*domain.JobResponse, len(jobs))
	for i, job := range jobs {
		resp[i] = job.ToResponse()
	}
	common.SuccessResponse(c, resp, nil)
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Idempotent; re-applying is a no-op (auth required)
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  common.APIResponse{data=domain.JobResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /jobs/{id}/apply [post]
func (h *JobHandler) ApplyToJob(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid job ID", err)
		return
	}

	job, err := h.service.Apply(id, middleware.GetProfileID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrJobNotFound):
			common.ErrorResponse(c, 404, "Job not found", err)
		case errors.Is(err, common.ErrProfileNotFound):
			common.ErrorResponse(c, 404, "Profile not found", err)
		default:
			common.ErrorResponse(c, 500, "Failed to apply", err)
		}
		return
	}

	common.SuccessResponse(c, job.ToResponse(), nil)
}

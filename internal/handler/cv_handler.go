package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/service"
	"github.com/postfolio/postfolio-backend/pkg/ginutil"
)

// CvHandler handles HTTP requests for the CV projection and export
type CvHandler struct {
	cv     service.CvService
	export service.CvExportService
}

// NewCvHandler creates a new CvHandler
func NewCvHandler(cv service.CvService, export service.CvExportService) *CvHandler {
	return &CvHandler{cv: cv, export: export}
}

// GetCvEntries godoc
// @Summary      Get a profile's CV entries
// @Tags         cv
// @Produce      json
// @Param        profile_id  path   int     true   "Profile ID"
// @Param        type        query  string  false  "Filter by CV section (EXPERIENCE, PROJECT, ACHIEVEMENT, SKILL)"
// @Success      200  {object}  common.APIResponse{data=[]domain.CvEntry}
// @Failure      404  {object}  common.APIResponse
// @Router       /profiles/{profile_id}/cv [get]
func (h *CvHandler) GetCvEntries(c *gin.Context) {
	profileID, err := ginutil.ParamInt64(c, "profile_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid profile ID", err)
		return
	}

	var entries []*domain.CvEntry
	if cvType := c.Query("type"); cvType != "" {
		entries, err = h.cv.EntriesForProfileAndType(c.Request.Context(), profileID, domain.CvType(cvType))
	} else {
		entries, err = h.cv.EntriesForProfile(c.Request.Context(), profileID)
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch CV entries", err)
		return
	}

	common.SuccessResponse(c, entries, nil)
}

// DownloadCv godoc
// @Summary      Download a profile's CV as a document
// @Tags         cv
// @Produce      plain
// @Param        profile_id  path  int  true  "Profile ID"
// @Success      200  {file}  file
// @Failure      404  {object}  common.APIResponse
// @Router       /profiles/{profile_id}/cv/download [get]
func (h *CvHandler) DownloadCv(c *gin.Context) {
	profileID, err := ginutil.ParamInt64(c, "profile_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid profile ID", err)
		return
	}

	doc, err := h.export.GenerateCv(profileID)
	if err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			common.ErrorResponse(c, 404, "Profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to generate CV", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=cv-%d.txt", profileID))
	c.Data(200, "text/plain; charset=utf-8", doc)
}

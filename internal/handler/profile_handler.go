package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/middleware"
	"github.com/postfolio/postfolio-backend/internal/service"
	"github.com/postfolio/postfolio-backend/pkg/ginutil"
)

const maxPictureBytes = 2 << 20 // 2MB upload cap

// ProfileHandler handles HTTP requests for profiles
type ProfileHandler struct {
	service service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile godoc
// @Summary      Get a profile
// @Tags         profiles
// @Produce      json
// @Param        id  path  int  true  "Profile ID"
// @Success      200  {object}  common.APIResponse{data=domain.ProfileResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid profile ID", err)
		return
	}

	profile, err := h.service.GetProfile(id)
	if err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			common.ErrorResponse(c, 404, "Profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch profile", err)
		return
	}

	common.SuccessResponse(c, profile.ToResponse(), nil)
}

// GetMyProfile godoc
// @Summary      Get the caller's own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=domain.ProfileResponse}
// @Router       /profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.service.GetProfileByUserID(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			common.ErrorResponse(c, 404, "Profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch profile", err)
		return
	}

	common.SuccessResponse(c, profile.ToResponse(), nil)
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Description  Multipart form; the picture file is optional and replaces the stored one
// @Tags         profiles
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        bio      formData  string  false  "Bio"
// @Param        picture  formData  file    false  "Profile picture"
// @Success      200  {object}  common.APIResponse{data=domain.ProfileResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /profiles/me [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request", err)
		return
	}

	var picture []byte
	if file, err := c.FormFile("picture"); err == nil {
		if file.Size > maxPictureBytes {
			common.ErrorResponse(c, 400, "Picture too large", nil)
			return
		}
		src, err := file.Open()
		if err != nil {
			common.ErrorResponse(c, 400, "Cannot read picture", err)
			return
		}
		picture, err = io.ReadAll(src)
		src.Close()
		if err != nil {
			common.ErrorResponse(c, 400, "Cannot read picture", err)
			return
		}
	}

	profile, err := h.service.UpdateProfile(middleware.GetUserID(c), &req, picture)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, 400, "Invalid profile fields", err)
			return
		}
		if errors.Is(err, common.ErrProfileNotFound) {
			common.ErrorResponse(c, 404, "Profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to update profile", err)
		return
	}

	common.SuccessResponse(c, profile.ToResponse(), nil)
}

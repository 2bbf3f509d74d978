package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/service"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary      Register an account
// @Description  Creates the account and its profile, returning a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.RegisterRequest  true  "Registration payload"
// @Success      201  {object}  common.APIResponse{data=domain.AuthResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	resp, err := h.service.Register(&req)
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			common.ErrorResponse(c, 409, "Email already registered", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to register", err)
		return
	}

	common.CreatedResponse(c, resp)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.AuthRequest  true  "Credentials"
// @Success      200  {object}  common.APIResponse{data=domain.AuthResponse}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.ErrorResponse(c, 401, "Invalid email or password", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to log in", err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/middleware"
	"github.com/postfolio/postfolio-backend/internal/service"
)

// SearchHandler handles HTTP requests for people search
type SearchHandler struct {
	service service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// SearchUsers godoc
// @Summary      Search people by name or email
// @Description  Each hit carries the caller's connection state towards that user (auth required)
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Search term"
// @Success      200  {object}  common.APIResponse{data=[]service.SearchResult}
// @Router       /search/users [get]
func (h *SearchHandler) SearchUsers(c *gin.Context) {
	results, err := h.service.SearchUsers(c.Query("q"), middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Search failed", err)
		return
	}
	common.SuccessResponse(c, results, nil)
}

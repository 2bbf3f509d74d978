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

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	service service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post and classifies it into the owner's CV (auth required)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreatePostRequest  true  "Post content"
// @Success      201  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	// The post always belongs to the authenticated profile
	profileID := middleware.GetProfileID(c)
	if req.ProfileID != profileID {
		common.ErrorResponse(c, 403, "Cannot post as another profile", nil)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), profileID, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			common.ErrorResponse(c, 404, "Profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to create post", err)
		return
	}

	common.CreatedResponse(c, post.ToResponse())
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	post, err := h.service.GetPost(id)
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, 404, "Post not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch post", err)
		return
	}

	common.SuccessResponse(c, post.ToResponse(), nil)
}

// UpdatePost godoc
// @Summary      Edit a post
// @Description  Replaces the content and re-classifies the post (auth required)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                       true  "Post ID"
// @Param        request  body  domain.UpdatePostRequest  true  "New content"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), id, middleware.GetProfileID(c), req.Content)
	if err != nil {
		h.respondPostError(c, err, "Failed to update post")
		return
	}

	common.SuccessResponse(c, post.ToResponse(), nil)
}

// UpdatePostTags godoc
// @Summary      Replace a post's tags
// @Description  Stores the tags exactly as given, without classification (auth required)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                      true  "Post ID"
// @Param        request  body  domain.TagUpdateRequest  true  "Tags"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id}/tags [put]
func (h *PostHandler) UpdatePostTags(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	var req domain.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.UpdatePostTags(c.Request.Context(), id, middleware.GetProfileID(c), req.Tags)
	if err != nil {
		h.respondPostError(c, err, "Failed to update tags")
		return
	}

	common.SuccessResponse(c, post.ToResponse(), nil)
}

// ReprocessPost godoc
// @Summary      Re-run classification for a post
// @Description  Retries classification and fails with 500 when the classifier stays unavailable (auth required)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /posts/{id}/reprocess [post]
func (h *PostHandler) ReprocessPost(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	post, err := h.service.ReprocessPost(c.Request.Context(), id, middleware.GetProfileID(c))
	if err != nil {
		if errors.Is(err, common.ErrClassification) {
			common.ErrorResponse(c, 500, "Classification unavailable", err)
			return
		}
		h.respondPostError(c, err, "Failed to reprocess post")
		return
	}

	common.SuccessResponse(c, post.ToResponse(), nil)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes the post together with its CV entries and reactions (auth required)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id, middleware.GetProfileID(c)); err != nil {
		h.respondPostError(c, err, "Failed to delete post")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// DeleteCvEntries godoc
// @Summary      Remove a post's CV entries
// @Description  Clears the CV projection of the post without deleting the post (auth required)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id}/cv-entries [delete]
func (h *PostHandler) DeleteCvEntries(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	if err := h.service.RemoveCvEntries(c.Request.Context(), id, middleware.GetProfileID(c)); err != nil {
		h.respondPostError(c, err, "Failed to remove CV entries")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// ListProfilePosts godoc
// @Summary      List a profile's posts
// @Tags         posts
// @Produce      json
// @Param        profile_id  path   int     true   "Profile ID"
// @Param        page        query  int     false  "Page (enables pagination)"
// @Param        limit       query  int     false  "Page size"
// @Param        type        query  string  false  "Filter by post type"
// @Param        tag         query  string  false  "Filter by tag"
// @Success      200  {object}  common.APIResponse{data=[]domain.PostResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /profiles/{profile_id}/posts [get]
func (h *PostHandler) ListProfilePosts(c *gin.Context) {
	profileID, err := ginutil.ParamInt64(c, "profile_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid profile ID", err)
		return
	}

	if typeFilter := c.Query("type"); typeFilter != "" {
		if !domain.ValidPostType(typeFilter) {
			common.ErrorResponse(c, 400, "Invalid post type", nil)
			return
		}
		posts, err := h.service.GetPostsByType(profileID, domain.PostType(typeFilter))
		if err != nil {
			h.respondPostError(c, err, "Failed to fetch posts")
			return
		}
		common.SuccessResponse(c, toResponses(posts), nil)
		return
	}

	if tag := c.Query("tag"); tag != "" {
		posts, err := h.service.GetPostsByTag(profileID, tag)
		if err != nil {
			h.respondPostError(c, err, "Failed to fetch posts")
			return
		}
		common.SuccessResponse(c, toResponses(posts), nil)
		return
	}

	if c.Query("page") != "" || c.Query("limit") != "" {
		page := ginutil.QueryInt(c, "page", 1)
		limit := ginutil.QueryInt(c, "limit", 20)
		posts, meta, err := h.service.GetPaginatedPostsByProfile(profileID, page, limit)
		if err != nil {
			h.respondPostError(c, err, "Failed to fetch posts")
			return
		}
		common.SuccessResponse(c, toResponses(posts), meta)
		return
	}

	posts, err := h.service.GetPostsByProfile(profileID)
	if err != nil {
		h.respondPostError(c, err, "Failed to fetch posts")
		return
	}
	common.SuccessResponse(c, toResponses(posts), nil)
}

// ListProfileSkills godoc
// @Summary      List the distinct tags across a profile's posts
// @Tags         posts
// @Produce      json
// @Param        profile_id  path  int  true  "Profile ID"
// @Success      200  {object}  common.APIResponse{data=[]string}
// @Router       /profiles/{profile_id}/skills [get]
func (h *PostHandler) ListProfileSkills(c *gin.Context) {
	profileID, err := ginutil.ParamInt64(c, "profile_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid profile ID", err)
		return
	}

	skills, err := h.service.GetProfileSkills(profileID)
	if err != nil {
		h.respondPostError(c, err, "Failed to fetch skills")
		return
	}
	common.SuccessResponse(c, skills, nil)
}

// ListPostsNeedingReview godoc
// @Summary      List a profile's posts whose tags need manual review
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        profile_id  path   int  true   "Profile ID"
// @Param        page        query  int  false  "Page"
// @Param        limit       query  int  false  "Page size"
// @Success      200  {object}  common.APIResponse{data=[]domain.PostResponse}
// @Router       /profiles/{profile_id}/posts/review [get]
func (h *PostHandler) ListPostsNeedingReview(c *gin.Context) {
	profileID, err := ginutil.ParamInt64(c, "profile_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid profile ID", err)
		return
	}
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	posts, meta, err := h.service.GetPostsNeedingReview(profileID, page, limit)
	if err != nil {
		h.respondPostError(c, err, "Failed to fetch posts")
		return
	}
	common.SuccessResponse(c, toResponses(posts), meta)
}

// ListLatestPosts godoc
// @Summary      List the newest posts across all profiles
// @Tags         posts
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.PostResponse}
// @Router       /posts/latest [get]
func (h *PostHandler) ListLatestPosts(c *gin.Context) {
	posts, err := h.service.GetLatestPosts(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch latest posts", err)
		return
	}
	common.SuccessResponse(c, toResponses(posts), nil)
}

// ListFeedPosts godoc
// @Summary      List the caller's feed
// @Description  Posts from accepted connections and the caller, newest first (auth required)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.PostResponse}
// @Router       /posts/feed [get]
func (h *PostHandler) ListFeedPosts(c *gin.Context) {
	posts, err := h.service.GetFeedPosts(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch feed", err)
		return
	}
	common.SuccessResponse(c, toResponses(posts), nil)
}

// CelebratePost godoc
// @Summary      Celebrate a post
// @Description  Records one celebrate reaction per user per post (auth required)
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      201  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /posts/{id}/celebrate [post]
func (h *PostHandler) CelebratePost(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	err = h.service.CelebratePost(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrAlreadyReacted) {
			common.ErrorResponse(c, 409, "Already celebrated", err)
			return
		}
		h.respondPostError(c, err, "Failed to celebrate post")
		return
	}

	common.CreatedResponse(c, gin.H{"celebrated": true})
}

// ListPostReactions godoc
// @Summary      List a post's reactions
// @Tags         reactions
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.ReactionResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id}/reactions [get]
func (h *PostHandler) ListPostReactions(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	reactions, err := h.service.GetPostReactions(id)
	if err != nil {
		h.respondPostError(c, err, "Failed to fetch reactions")
		return
	}

	resp := make([]*domain.ReactionResponse, len(reactions))
	for i, r := range reactions {
		resp[i] = r.ToResponse()
	}
	common.SuccessResponse(c, resp, nil)
}

func (h *PostHandler) respondPostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrPostNotFound):
		common.ErrorResponse(c, 404, "Post not found", err)
	case errors.Is(err, common.ErrProfileNotFound):
		common.ErrorResponse(c, 404, "Profile not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Not the post owner", err)
	default:
		common.ErrorResponse(c, 500, fallback, err)
	}
}

func toResponses(posts []*domain.Post) []*domain.PostResponse {
	resp := make([]*domain.PostResponse, len(posts))
	for i, p := range posts {
		resp[i] = p.ToResponse()
	}
	return resp
}

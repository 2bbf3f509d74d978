package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/handler"
	"github.com/postfolio/postfolio-backend/internal/middleware"
	"github.com/postfolio/postfolio-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	profileHandler *handler.ProfileHandler,
	cvHandler *handler.CvHandler,
	connectionHandler *handler.ConnectionHandler,
	jobHandler *handler.JobHandler,
	searchHandler *handler.SearchHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")
	authed := middleware.JWTAuth(jwtManager)

	// Authentication (no auth required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Posts
	posts := api.Group("/posts")
	{
		posts.GET("/latest", postHandler.ListLatestPosts)
		posts.GET("/feed", authed, postHandler.ListFeedPosts)
		posts.POST("", authed, postHandler.CreatePost)
		posts.GET("/:id", postHandler.GetPost)
		posts.PUT("/:id", authed, postHandler.UpdatePost)
		posts.DELETE("/:id", authed, postHandler.DeletePost)
		posts.PUT("/:id/tags", authed, postHandler.UpdatePostTags)
		posts.POST("/:id/reprocess", authed, postHandler.ReprocessPost)
		posts.DELETE("/:id/cv-entries", authed, postHandler.DeleteCvEntries)
		posts.POST("/:id/celebrate", authed, postHandler.CelebratePost)
		posts.GET("/:id/reactions", postHandler.ListPostReactions)
	}

	// Profiles and their derived views
	profiles := api.Group("/profiles")
	{
		profiles.GET("/me", authed, profileHandler.GetMyProfile)
		profiles.PUT("/me", authed, profileHandler.UpdateProfile)
		profiles.GET("/:profile_id", profileHandler.GetProfile)
		profiles.GET("/:profile_id/posts", postHandler.ListProfilePosts)
		profiles.GET("/:profile_id/posts/review", authed, postHandler.ListPostsNeedingReview)
		profiles.GET("/:profile_id/skills", postHandler.ListProfileSkills)
		profiles.GET("/:profile_id/cv", cvHandler.GetCvEntries)
		profiles.GET("/:profile_id/cv/download", cvHandler.DownloadCv)
	}

	// Connections (all auth required)
	connections := api.Group("/connections", authed)
	{
		connections.GET("", connectionHandler.ListConnections)
		connections.GET("/count", connectionHandler.CountConnections)
		connections.GET("/pending/sent", connectionHandler.ListPendingSent)
		connections.GET("/pending/received", connectionHandler.ListPendingReceived)
		connections.GET("/status/:user_id", connectionHandler.GetConnectionStatus)
		connections.POST("/request/:user_id", connectionHandler.SendRequest)
		connections.PUT("/block/:user_id", connectionHandler.BlockUser)
		connections.PUT("/:id/accept", connectionHandler.AcceptRequest)
		connections.PUT("/:id/reject", connectionHandler.RejectRequest)
		connections.DELETE("/:id", connectionHandler.RemoveConnection)
	}

	// Jobs
	jobs := api.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.POST("", authed, middleware.RequireRole(string(domain.RoleEmployer), string(domain.RoleAdmin)), jobHandler.CreateJob)
		jobs.POST("/:id/apply", authed, jobHandler.ApplyToJob)
	}

	// Search
	api.GET("/search/users", authed, searchHandler.SearchUsers)
}

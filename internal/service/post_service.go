package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/postfolio/postfolio-backend/internal/classifier"
	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/middleware"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/postfolio/postfolio-backend/pkg/cache"
	"github.com/postfolio/postfolio-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	fallbackHeadingLength = 50
	latestFeedSize        = 10

	retagAttempts = 3
	retagBackoff  = 500 * time.Millisecond
)

// PostService owns the post lifecycle and keeps the CV projection in
// sync. Every mutation and its projection run in one transaction.
// Caller identity arrives as an explicit profileID/userID argument.
type PostService interface {
	CreatePost(ctx context.Context, profileID int64, content string) (*domain.Post, error)
	UpdatePost(ctx context.Context, postID, profileID int64, newContent string) (*domain.Post, error)
	UpdatePostTags(ctx context.Context, postID, profileID int64, tags []string) (*domain.Post, error)
	ReprocessPost(ctx context.Context, postID, profileID int64) (*domain.Post, error)
	DeletePost(ctx context.Context, postID, profileID int64) error
	// RemoveCvEntries clears the post's CV projection while keeping
	// the post itself
	RemoveCvEntries(ctx context.Context, postID, profileID int64) error

	GetPost(postID int64) (*domain.Post, error)
	GetPostsByProfile(profileID int64) ([]*domain.Post, error)
	GetPaginatedPostsByProfile(profileID int64, page, limit int) ([]*domain.Post, *common.Meta, error)
	GetPostsByType(profileID int64, postType domain.PostType) ([]*domain.Post, error)
	GetPostsByTag(profileID int64, tag string) ([]*domain.Post, error)
	GetProfileSkills(profileID int64) ([]string, error)
	GetPostsNeedingReview(profileID int64, page, limit int) ([]*domain.Post, *common.Meta, error)
	GetLatestPosts(ctx context.Context) ([]*domain.Post, error)
	GetFeedPosts(ctx context.Context, userID int64) ([]*domain.Post, error)

	CelebratePost(ctx context.Context, postID, userID int64) error
	GetPostReactions(postID int64) ([]*domain.Reaction, error)
}

type postService struct {
	db          *gorm.DB
	posts       repository.PostRepository
	profiles    repository.ProfileRepository
	reactions   repository.ReactionRepository
	connections repository.ConnectionRepository
	classifier  classifier.Classifier
	cv          CvService
	cache       cache.Service
}

// NewPostService creates a new PostService
func NewPostService(
	db *gorm.DB,
	posts repository.PostRepository,
	profiles repository.ProfileRepository,
	reactions repository.ReactionRepository,
	connections repository.ConnectionRepository,
	cls classifier.Classifier,
	cv CvService,
	cacheService cache.Service,
) PostService {
	return &postService{
		db:          db,
		posts:       posts,
		profiles:    profiles,
		reactions:   reactions,
		connections: connections,
		classifier:  cls,
		cv:          cv,
		cache:       cacheService,
	}
}

// CreatePost classifies the content and persists the post together
// with its CV projection. A failed classification degrades to an
// untyped post with a truncated heading; the post is still created.
func (s *postService) CreatePost(ctx context.Context, profileID int64, content string) (*domain.Post, error) {
	profile, err := s.profiles.FindByID(profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &domain.Post{
		ProfileID: profile.ID,
		Content:   content,
		Tags:      domain.StringList{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, cerr := s.classifier.Classify(ctx, content)
	if cerr != nil {
		middleware.RecordClassification("failure")
		logger.GetLogger().Warn().Err(cerr).
			Int64("profile_id", profileID).
			Msg("classification failed on create, using fallback heading")
		post.CvHeading = fallbackHeading(content)
		post.AutoTagged = false
	} else {
		middleware.RecordClassification("success")
		applyResult(post, result)
		post.AutoTagged = true
	}

	err = s.savePostWithProjection(post, func(tx *gorm.DB) error {
		return s.posts.WithTx(tx).Create(post)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLatest(ctx)
	return post, nil
}

// UpdatePost re-classifies the edited content. The manual edit
// de-certifies auto-tagging even when classification succeeded; a
// failed classification keeps the previous type/tags and only falls
// back on the heading.
func (s *postService) UpdatePost(ctx context.Context, postID, profileID int64, newContent string) (*domain.Post, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if err := validateOwnership(post, profileID); err != nil {
		return nil, err
	}

	post.Content = newContent

	result, cerr := s.classifier.Classify(ctx, newContent)
	if cerr != nil {
		middleware.RecordClassification("failure")
		logger.GetLogger().Warn().Err(cerr).
			Int64("post_id", postID).
			Msg("classification failed on update, using fallback heading")
		post.CvHeading = fallbackHeading(newContent)
	} else {
		middleware.RecordClassification("success")
		applyResult(post, result)
	}

	post.AutoTagged = false
	post.UpdatedAt = time.Now()

	err = s.savePostWithProjection(post, func(tx *gorm.DB) error {
		return s.posts.WithTx(tx).Save(post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePostTags replaces the tag list verbatim, without a classifier
// call
func (s *postService) UpdatePostTags(_ context.Context, postID, profileID int64, tags []string) (*domain.Post, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if err := validateOwnership(post, profileID); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}
	post.Tags = domain.StringList(tags)
	post.AutoTagged = false
	post.UpdatedAt = time.Now()

	err = s.savePostWithProjection(post, func(tx *gorm.DB) error {
		return s.posts.WithTx(tx).Save(post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ReprocessPost forces a fresh classification. Unlike create/update
// there is no degraded branch: the point of the call is a correct
// result, so after the retries are exhausted the failure is surfaced
// and the post is left untouched.
func (s *postService) ReprocessPost(ctx context.Context, postID, profileID int64) (*domain.Post, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if err := validateOwnership(post, profileID); err != nil {
		return nil, err
	}

	var result *classifier.Result
	var cerr error
	for attempt := 1; attempt <= retagAttempts; attempt++ {
		result, cerr = s.classifier.Classify(ctx, post.Content)
		if cerr == nil {
			middleware.RecordClassification("success")
			break
		}
		middleware.RecordClassification("failure")
		logger.GetLogger().Warn().Err(cerr).
			Int64("post_id", postID).
			Int("attempt", attempt).
			Msg("reprocess classification attempt failed")
		if attempt < retagAttempts {
			select {
			case <-time.After(retagBackoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", common.ErrClassification, ctx.Err())
			}
		}
	}
	if cerr != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrClassification, cerr)
	}

	applyResult(post, result)
	post.AutoTagged = true
	post.UpdatedAt = time.Now()

	err = s.savePostWithProjection(post, func(tx *gorm.DB) error {
		return s.posts.WithTx(tx).Save(post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post, its CV entries and its reactions in
// one transaction
func (s *postService) DeletePost(ctx context.Context, postID, profileID int64) error {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return err
	}
	if err := validateOwnership(post, profileID); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).Delete(postID); err != nil {
			return err
		}
		if err := s.cv.RemoveEntriesForPost(tx, postID); err != nil {
			return err
		}
		return s.reactions.WithTx(tx).DeleteByPostID(postID)
	})
	if err != nil {
		return err
	}

	s.invalidateLatest(ctx)
	return nil
}

func (s *postService) RemoveCvEntries(_ context.Context, postID, profileID int64) error {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return err
	}
	if err := validateOwnership(post, profileID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.cv.RemoveEntriesForPost(tx, postID)
	})
}

// --- Reads ---

func (s *postService) GetPost(postID int64) (*domain.Post, error) {
	return s.posts.FindByID(postID)
}

func (s *postService) GetPostsByProfile(profileID int64) ([]*domain.Post, error) {
	if _, err := s.profiles.FindByID(profileID); err != nil {
		return nil, err
	}
	return s.posts.ListByProfile(profileID)
}

func (s *postService) GetPaginatedPostsByProfile(profileID int64, page, limit int) ([]*domain.Post, *common.Meta, error) {
	page, limit = normalizePagination(page, limit)
	if _, err := s.profiles.FindByID(profileID); err != nil {
		return nil, nil, err
	}

	posts, total, err := s.posts.ListByProfilePaginated(profileID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return posts, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *postService) GetPostsByType(profileID int64, postType domain.PostType) ([]*domain.Post, error) {
	if _, err := s.profiles.FindByID(profileID); err != nil {
		return nil, err
	}
	return s.posts.ListByProfileAndType(profileID, postType)
}

func (s *postService) GetPostsByTag(profileID int64, tag string) ([]*domain.Post, error) {
	if _, err := s.profiles.FindByID(profileID); err != nil {
		return nil, err
	}
	return s.posts.ListByProfileAndTag(profileID, tag)
}

func (s *postService) GetProfileSkills(profileID int64) ([]string, error) {
	if _, err := s.profiles.FindByID(profileID); err != nil {
		return nil, err
	}
	return s.posts.DistinctTagsByProfile(profileID)
}

func (s *postService) GetPostsNeedingReview(profileID int64, page, limit int) ([]*domain.Post, *common.Meta, error) {
	page, limit = normalizePagination(page, limit)
	if _, err := s.profiles.FindByID(profileID); err != nil {
		return nil, nil, err
	}

	posts, total, err := s.posts.ListNeedingReview(profileID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return posts, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// GetLatestPosts serves the global feed from cache when possible
func (s *postService) GetLatestPosts(ctx context.Context) ([]*domain.Post, error) {
	if s.cache != nil {
		var cached []*domain.Post
		if err := s.cache.GetLatestPosts(ctx, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.posts.ListLatest(latestFeedSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetLatestPosts(ctx, posts)
	}
	return posts, nil
}

// GetFeedPosts returns posts from accepted friends and the caller,
// newest first
func (s *postService) GetFeedPosts(_ context.Context, userID int64) ([]*domain.Post, error) {
	friendIDs, err := s.connections.AcceptedFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByProfileUserIDs(append(friendIDs, userID))
}

// --- Reactions ---

// CelebratePost records a celebrate reaction; at most one per
// (post, user)
func (s *postService) CelebratePost(_ context.Context, postID, userID int64) error {
	if _, err := s.posts.FindByID(postID); err != nil {
		return err
	}

	exists, err := s.reactions.ExistsByPostAndUser(postID, userID)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrAlreadyReacted
	}

	return s.reactions.Create(&domain.Reaction{
		PostID:    postID,
		UserID:    userID,
		Type:      domain.ReactionCelebrate,
		CreatedAt: time.Now(),
	})
}

func (s *postService) GetPostReactions(postID int64) ([]*domain.Reaction, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, err
	}
	return s.reactions.ListByPost(postID)
}

// --- Helpers ---

// savePostWithProjection runs the post write and its CV projection in
// one transaction. The profile lock is held until the transaction
// returns, so a concurrent writer cannot read the skill set before
// this writer's inserts are committed.
func (s *postService) savePostWithProjection(post *domain.Post, write func(tx *gorm.DB) error) error {
	unlock := s.cv.LockProfile(post.ProfileID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := write(tx); err != nil {
			return err
		}
		return s.cv.UpdateFromPost(tx, post)
	})
}

// applyResult copies a classification onto the post; the heading
// falls back to the type label when the classifier gave no summary
func applyResult(post *domain.Post, result *classifier.Result) {
	postType := result.Type
	post.Type = &postType
	post.Tags = domain.StringList(result.Tags)
	if result.Summary != "" {
		post.CvHeading = result.Summary
	} else {
		post.CvHeading = typeHeading(result.Type)
	}
}

func validateOwnership(post *domain.Post, profileID int64) error {
	if post.ProfileID != profileID {
		return common.ErrForbidden
	}
	return nil
}

// fallbackHeading truncates the content for display when no
// classification is available
func fallbackHeading(content string) string {
	// slice on rune boundaries so multi-byte content is never cut
	// mid-character
	runes := []rune(content)
	if len(runes) > fallbackHeadingLength {
		return string(runes[:fallbackHeadingLength]) + "..."
	}
	return content
}

// typeHeading renders a type label as a display heading ("PROJECT" ->
// "Project")
func typeHeading(t domain.PostType) string {
	label := string(t)
	if label == "" {
		return ""
	}
	return label[:1] + strings.ToLower(label[1:])
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (s *postService) invalidateLatest(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateLatestPosts(ctx)
	}
}

package repository

import (
	"errors"
	"fmt"
	"sort"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository post storage and derived queries
type PostRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) PostRepository

	Create(post *domain.Post) error
	Save(post *domain.Post) error
	FindByID(id int64) (*domain.Post, error)
	Delete(id int64) error

	ListByProfile(profileID int64) ([]*domain.Post, error)
	ListByProfilePaginated(profileID int64, page, limit int) ([]*domain.Post, int64, error)
	ListByProfileAndType(profileID int64, postType domain.PostType) ([]*domain.Post, error)
	ListByProfileAndTag(profileID int64, tag string) ([]*domain.Post, error)
	DistinctTagsByProfile(profileID int64) ([]string, error)
	ListLatest(limit int) ([]*domain.Post, error)
	ListNeedingReview(profileID int64, page, limit int) ([]*domain.Post, int64, error)
	ListByProfileUserIDs(userIDs []int64) ([]*domain.Post, error)
	CountByProfile(profileID int64) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) Save(post *domain.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) FindByID(id int64) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(id int64) error {
	return r.db.Delete(&domain.Post{}, id).Error
}

func (r *postRepository) ListByProfile(profileID int64) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByProfilePaginated(profileID int64, page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	query := r.db.Model(&domain.Post{}).Where("profile_id = ?", profileID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) ListByProfileAndType(profileID int64, postType domain.PostType) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.
		Where("profile_id = ? AND type = ?", profileID, postType).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListByProfileAndTag matches the serialized tag list on the exact
// quoted tag, so "Go" does not match "Google"
func (r *postRepository) ListByProfileAndTag(profileID int64, tag string) ([]*domain.Post, error) {
	var posts []*domain.Post
	pattern := fmt.Sprintf("%%%q%%", tag)
	err := r.db.
		Where("profile_id = ? AND tags LIKE ?", profileID, pattern).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// DistinctTagsByProfile aggregates the tag set in memory; a profile's
// post count is small by construction
func (r *postRepository) DistinctTagsByProfile(profileID int64) ([]string, error) {
	var posts []*domain.Post
	if err := r.db.Select("tags").Where("profile_id = ?", profileID).Find(&posts).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, post := range posts {
		for _, tag := range post.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *postRepository) ListLatest(limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListNeedingReview(profileID int64, page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	query := r.db.Model(&domain.Post{}).
		Where("profile_id = ? AND auto_tagged = ?", profileID, false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// ListByProfileUserIDs returns posts whose owning profile belongs to
// one of the given users, newest first; used for the friends feed
func (r *postRepository) ListByProfileUserIDs(userIDs []int64) ([]*domain.Post, error) {
	if len(userIDs) == 0 {
		return []*domain.Post{}, nil
	}
	var posts []*domain.Post
	err := r.db.
		Joins("JOIN profiles ON profiles.id = posts.profile_id").
		Where("profiles.user_id IN ?", userIDs).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountByProfile(profileID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Post{}).Where("profile_id = ?", profileID).Count(&count).Error
	return count, err
}

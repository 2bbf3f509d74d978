package repository

import (
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// ReactionRepository reaction storage
type ReactionRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) ReactionRepository

	Create(reaction *domain.Reaction) error
	ExistsByPostAndUser(postID, userID int64) (bool, error)
	ListByPost(postID int64) ([]*domain.Reaction, error)
	// DeleteByPostID removes every reaction on the post; no-op when
	// none match
	DeleteByPostID(postID int64) error
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) WithTx(tx *gorm.DB) ReactionRepository {
	return &reactionRepository{db: tx}
}

func (r *reactionRepository) Create(reaction *domain.Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *reactionRepository) ExistsByPostAndUser(postID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Reaction{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *reactionRepository) ListByPost(postID int64) ([]*domain.Reaction, error) {
	var reactions []*domain.Reaction
	err := r.db.
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) DeleteByPostID(postID int64) error {
	return r.db.Where("post_id = ?", postID).Delete(&domain.Reaction{}).Error
}

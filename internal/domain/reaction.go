package domain

import "time"

// ReactionType kind of reaction to a post
type ReactionType string

// Reaction types
const (
	ReactionCelebrate ReactionType = "CELEBRATE"
)

// Reaction records a user's reaction to a post; at most one reaction
// per (post, user) pair, enforced by the unique index.
type Reaction struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    int64        `gorm:"column:post_id;uniqueIndex:uq_post_user;not null" json:"post_id"`
	Post      *Post        `gorm:"foreignKey:PostID" json:"-"`
	UserID    int64        `gorm:"column:user_id;uniqueIndex:uq_post_user;not null" json:"user_id"`
	User      *User        `gorm:"foreignKey:UserID" json:"-"`
	Type      ReactionType `gorm:"column:type;size:20;not null" json:"type"`
	CreatedAt time.Time    `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (Reaction) TableName() string {
	return "reactions"
}

// ReactionResponse API view of a reaction
type ReactionResponse struct {
	ID        int64        `json:"id"`
	Type      ReactionType `json:"type"`
	UserName  string       `json:"user_name"`
	CreatedAt string       `json:"created_at"`
}

// ToResponse converts a Reaction (with User preloaded) to its API view
func (r *Reaction) ToResponse() *ReactionResponse {
	resp := &ReactionResponse{
		ID:        r.ID,
		Type:      r.Type,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	return resp
}

package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PostType classification label for a post
type PostType string

// Post classification labels
const (
	TypeExperience  PostType = "EXPERIENCE"
	TypeEducation   PostType = "EDUCATION"
	TypeSkill       PostType = "SKILL"
	TypeProject     PostType = "PROJECT"
	TypeAchievement PostType = "ACHIEVEMENT"
)

// ValidPostType reports whether s is one of the five labels
func ValidPostType(s string) bool {
	switch PostType(s) {
	case TypeExperience, TypeEducation, TypeSkill, TypeProject, TypeAchievement:
		return true
	}
	return false
}

// StringList stores a []string as JSON in a TEXT column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Post is a user-authored content item with derived classification
// metadata. Type is nil until a classification has been applied.
// AutoTagged is true only while the current type/tags came from the
// classifier and were not manually overridden.
type Post struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProfileID  int64      `gorm:"column:profile_id;index;not null" json:"profile_id"`
	Profile    *Profile   `gorm:"foreignKey:ProfileID" json:"-"`
	Content    string     `gorm:"column:content;type:text;not null" json:"content"`
	CvHeading  string     `gorm:"column:cv_heading;size:255" json:"cv_heading,omitempty"`
	Type       *PostType  `gorm:"column:type;size:20" json:"type,omitempty"`
	Tags       StringList `gorm:"column:tags;type:text" json:"tags"`
	AutoTagged bool       `gorm:"column:auto_tagged;not null;default:false" json:"auto_tagged"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName returns the table name
func (Post) TableName() string {
	return "posts"
}

// CreatePostRequest post submission payload
type CreatePostRequest struct {
	ProfileID int64  `json:"profile_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// UpdatePostRequest content edit payload
type UpdatePostRequest struct {
	ProfileID int64  `json:"profile_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// TagUpdateRequest manual tag replacement payload
type TagUpdateRequest struct {
	ProfileID int64    `json:"profile_id" binding:"required"`
	Tags      []string `json:"tags"`
}

// PostResponse API view of a post
type PostResponse struct {
	ID         int64    `json:"id"`
	ProfileID  int64    `json:"profile_id"`
	Content    string   `json:"content"`
	CvHeading  string   `json:"cv_heading,omitempty"`
	Type       string   `json:"type,omitempty"`
	Tags       []string `json:"tags"`
	AutoTagged bool     `json:"auto_tagged"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// ToResponse converts a Post to its API view
func (p *Post) ToResponse() *PostResponse {
	resp := &PostResponse{
		ID:         p.ID,
		ProfileID:  p.ProfileID,
		Content:    p.Content,
		CvHeading:  p.CvHeading,
		Tags:       p.Tags,
		AutoTagged: p.AutoTagged,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Type != nil {
		resp.Type = string(*p.Type)
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

package domain

// CvType CV section an entry belongs to
type CvType string

// CV section types
const (
	CvExperience  CvType = "EXPERIENCE"
	CvProject     CvType = "PROJECT"
	CvAchievement CvType = "ACHIEVEMENT"
	CvSkill       CvType = "SKILL"
)

// CvEntry is a projected, deduplicated line item for rendering a
// profile's résumé, derived from posts. For SKILL entries the content
// (the skill text) is unique per profile; for the other types a post
// contributes at most one heading entry, tracked by PostID.
type CvEntry struct {
	ID        int64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProfileID int64    `gorm:"column:profile_id;index;not null" json:"profile_id"`
	Profile   *Profile `gorm:"foreignKey:ProfileID" json:"-"`
	Type      CvType   `gorm:"column:type;size:20;not null" json:"type"`
	Content   string   `gorm:"column:content;type:text;not null" json:"content"`
	PostID    int64    `gorm:"column:post_id;index" json:"post_id"`
}

// TableName returns the table name
func (CvEntry) TableName() string {
	return "cv_entries"
}

// MapPostTypeToCvType returns the CV section a post heading belongs
// to, or "" when the post type contributes no heading entry
// (SKILL posts carry only tags; EDUCATION has no CV section mapping).
func MapPostTypeToCvType(t PostType) CvType {
	switch t {
	case TypeExperience:
		return CvExperience
	case TypeProject:
		return CvProject
	case TypeAchievement:
		return CvAchievement
	}
	return ""
}

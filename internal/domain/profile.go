package domain

import "time"

// Profile holds the portfolio data owned by a user. The picture is
// stored base64-encoded in the row, matching the upload flow where
// the client sends the raw image as multipart form data.
type Profile struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID           int64      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	User             *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PictureBase64    string     `gorm:"column:profile_picture;type:mediumtext" json:"picture_base64,omitempty"`
	Bio              string     `gorm:"column:bio;type:text" json:"bio,omitempty"`
	BirthDate        *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`
	SscResult        string     `gorm:"column:ssc_result;size:100" json:"ssc_result,omitempty"`
	HscResult        string     `gorm:"column:hsc_result;size:100" json:"hsc_result,omitempty"`
	UniversityResult string     `gorm:"column:university_result;size:100" json:"university_result,omitempty"`
	Position         string     `gorm:"column:position_or_institute;size:255" json:"position_or_institute,omitempty"`
	PhoneNumber      string     `gorm:"column:phone_number;size:50" json:"phone_number,omitempty"`
	Address          string     `gorm:"column:address;size:255" json:"address,omitempty"`
}

// TableName returns the table name
func (Profile) TableName() string {
	return "profiles"
}

// ProfileRequest create/update payload; the picture arrives separately
// as multipart form data
type ProfileRequest struct {
	Bio         string `form:"bio" json:"bio"`
	PhoneNumber string `form:"phone_number" json:"phone_number"`
	Address     string `form:"address" json:"address"`
	Position    string `form:"position_or_institute" json:"position_or_institute"`
	BirthDate   string `form:"birth_date" json:"birth_date"` // YYYY-MM-DD
	SscResult   string `form:"ssc_result" json:"ssc_result"`
	HscResult   string `form:"hsc_result" json:"hsc_result"`
	University  string `form:"university_result" json:"university_result"`
}

// ProfileResponse public profile view
type ProfileResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PictureBase64 string `json:"picture_base64,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Position      string `json:"position_or_institute,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	Address       string `json:"address,omitempty"`
}

// ToResponse converts a Profile (with User preloaded) to its public view
func (p *Profile) ToResponse() *ProfileResponse {
	resp := &ProfileResponse{
		ID:            p.ID,
		PictureBase64: p.PictureBase64,
		Bio:           p.Bio,
		Position:      p.Position,
		PhoneNumber:   p.PhoneNumber,
		Address:       p.Address,
	}
	if p.User != nil {
		resp.Name = p.User.Name
		resp.Email = p.User.Email
	}
	return resp
}

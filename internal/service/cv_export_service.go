package service

import (
	"sort"
	"strings"

	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
)

// CvExportService renders a profile's CV as a downloadable plain-text
// document. Section order: personal information, experience,
// education, projects, achievements, skills.
type CvExportService interface {
	GenerateCv(profileID int64) ([]byte, error)
}

type cvExportService struct {
	profiles repository.ProfileRepository
	posts    repository.PostRepository
}

// NewCvExportService creates a new CvExportService
func NewCvExportService(profiles repository.ProfileRepository, posts repository.PostRepository) CvExportService {
	return &cvExportService{profiles: profiles, posts: posts}
}

func (s *cvExportService) GenerateCv(profileID int64) ([]byte, error) {
	profile, err := s.profiles.FindByID(profileID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByProfile(profileID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	writePersonalInfo(&b, profile)
	writePostSection(&b, "EXPERIENCE", filterByType(posts, domain.TypeExperience))
	writeEducation(&b, profile)
	writePostSection(&b, "PROJECTS", filterByType(posts, domain.TypeProject))
	writePostSection(&b, "ACHIEVEMENTS", filterByType(posts, domain.TypeAchievement))
	writeSkills(&b, posts)

	return []byte(b.String()), nil
}

func writePersonalInfo(b *strings.Builder, profile *domain.Profile) {
	writeHeader(b, "PERSONAL INFORMATION")
	if profile.User != nil {
		writeField(b, "Name", profile.User.Name)
	}
	writeField(b, "Position", profile.Position)
	writeField(b, "Phone", profile.PhoneNumber)
	if profile.User != nil {
		writeField(b, "Email", profile.User.Email)
	}
	writeField(b, "Address", profile.Address)
	writeField(b, "Bio", profile.Bio)
	b.WriteString("\n")
}

func writeEducation(b *strings.Builder, profile *domain.Profile) {
	writeHeader(b, "EDUCATION")
	empty := true
	if profile.UniversityResult != "" {
		writeField(b, "University", profile.UniversityResult)
		empty = false
	}
	if profile.HscResult != "" {
		writeField(b, "Higher Secondary", profile.HscResult)
		empty = false
	}
	if profile.SscResult != "" {
		writeField(b, "Secondary", profile.SscResult)
		empty = false
	}
	if empty {
		b.WriteString("No education information provided\n")
	}
	b.WriteString("\n")
}

func writePostSection(b *strings.Builder, title string, posts []*domain.Post) {
	writeHeader(b, title)
	if len(posts) == 0 {
		b.WriteString("No " + strings.ToLower(title) + " to display\n")
	} else {
		for _, post := range posts {
			b.WriteString("- " + post.CvHeading + "\n")
		}
	}
	b.WriteString("\n")
}

func writeSkills(b *strings.Builder, posts []*domain.Post) {
	writeHeader(b, "SKILLS")

	seen := make(map[string]struct{})
	var skills []string
	for _, post := range posts {
		for _, tag := range post.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				skills = append(skills, tag)
			}
		}
	}
	sort.Strings(skills)

	if len(skills) == 0 {
		b.WriteString("No skills listed\n")
	} else {
		b.WriteString(strings.Join(skills, ", ") + "\n")
	}
}

func writeHeader(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
}

func writeField(b *strings.Builder, label, value string) {
	if value != "" {
		b.WriteString(label + ": " + value + "\n")
	}
}

func filterByType(posts []*domain.Post, t domain.PostType) []*domain.Post {
	var out []*domain.Post
	for _, post := range posts {
		if post.Type != nil && *post.Type == t {
			out = append(out, post)
		}
	}
	return out
}

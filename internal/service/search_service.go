package service

import (
	"errors"
	"strings"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
)

// SearchResult is one user hit annotated with the caller's
// connection state towards them
type SearchResult struct {
	UserID           int64                   `json:"user_id"`
	ProfileID        int64                   `json:"profile_id,omitempty"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	PictureBase64    string                  `json:"picture_base64,omitempty"`
	Position         string                  `json:"position_or_institute,omitempty"`
	ConnectionStatus domain.ConnectionStatus `json:"connection_status"`
}

// SearchService finds people by name or email
type SearchService interface {
	SearchUsers(term string, callerUserID int64) ([]*SearchResult, error)
}

type searchService struct {
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	connections repository.ConnectionRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(users repository.UserRepository, profiles repository.ProfileRepository, connections repository.ConnectionRepository) SearchService {
	return &searchService{users: users, profiles: profiles, connections: connections}
}

// SearchUsers matches the term against user names and emails,
// excluding the caller. Blocked pairs are dropped from the results.
func (s *searchService) SearchUsers(term string, callerUserID int64) ([]*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*SearchResult{}, nil
	}

	users, err := s.users.Search(term, callerUserID)
	if err != nil {
		return nil, err
	}

	results := make([]*SearchResult, 0, len(users))
	for _, user := range users {
		status := domain.ConnectionStatus("NONE")
		conn, err := s.connections.FindBetweenUsers(callerUserID, user.ID)
		if err != nil && !errors.Is(err, common.ErrConnectionNotFound) {
			return nil, err
		}
		if conn != nil {
			if conn.Status == domain.ConnectionBlocked {
				continue
			}
			status = conn.Status
		}

		result := &SearchResult{
			UserID:           user.ID,
			Name:             user.Name,
			Email:            user.Email,
			ConnectionStatus: status,
		}
		if profile, err := s.profiles.FindByUserID(user.ID); err == nil {
			result.ProfileID = profile.ID
			result.PictureBase64 = profile.PictureBase64
			result.Position = profile.Position
		}
		results = append(results, result)
	}
	return results, nil
}

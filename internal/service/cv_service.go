package service

import (
	"context"
	"sync"

	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/postfolio/postfolio-backend/pkg/cache"
	"gorm.io/gorm"
)

// CvService keeps the CV projection synchronized with posts. Callers
// pass the transaction their post mutation runs in so the projection
// commits or rolls back with it.
type CvService interface {
	// LockProfile takes the profile's projection lock and returns the
	// unlock func. Callers hold it across the whole transaction that
	// runs UpdateFromPost, so a concurrent writer cannot snapshot the
	// skill set before the first writer's insert commits.
	LockProfile(profileID int64) func()
	// UpdateFromPost projects the post into the CV tables: one
	// heading entry per post for EXPERIENCE/PROJECT/ACHIEVEMENT
	// types, plus one SKILL entry per previously unseen tag. The
	// caller must hold the profile lock.
	UpdateFromPost(tx *gorm.DB, post *domain.Post) error
	// RemoveEntriesForPost deletes every entry derived from the post
	RemoveEntriesForPost(tx *gorm.DB, postID int64) error
	EntriesForProfile(ctx context.Context, profileID int64) ([]*domain.CvEntry, error)
	EntriesForProfileAndType(ctx context.Context, profileID int64, cvType domain.CvType) ([]*domain.CvEntry, error)
}

// keyedMutex serializes the skill dedup read-then-insert per profile;
// two concurrent posts for the same profile must not both observe "no
// existing entry" for the same tag.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (k *keyedMutex) lock(key int64) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[int64]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

type cvService struct {
	repo  repository.CvEntryRepository
	cache cache.Service
	locks keyedMutex
}

// NewCvService creates a new CvService
func NewCvService(repo repository.CvEntryRepository, cacheService cache.Service) CvService {
	return &cvService{repo: repo, cache: cacheService}
}

func (s *cvService) LockProfile(profileID int64) func() {
	return s.locks.lock(profileID)
}

func (s *cvService) UpdateFromPost(tx *gorm.DB, post *domain.Post) error {
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	// Skill-only posts carry no heading; unclassified posts map to
	// no section either. EDUCATION intentionally has no CV section.
	if post.Type != nil && *post.Type != domain.TypeSkill {
		if cvType := domain.MapPostTypeToCvType(*post.Type); cvType != "" && post.CvHeading != "" {
			// Replace any stale heading from a prior classification
			if err := repo.DeleteByPostID(post.ID); err != nil {
				return err
			}
			entry := &domain.CvEntry{
				ProfileID: post.ProfileID,
				Type:      cvType,
				Content:   post.CvHeading,
				PostID:    post.ID,
			}
			if err := repo.Create(entry); err != nil {
				return err
			}
		}
	}

	if err := s.addTagsAsSkills(repo, post); err != nil {
		return err
	}

	s.invalidate(post.ProfileID)
	return nil
}

// addTagsAsSkills inserts a SKILL entry per tag the profile does not
// already have; skill text is a set key per profile
func (s *cvService) addTagsAsSkills(repo repository.CvEntryRepository, post *domain.Post) error {
	if len(post.Tags) == 0 {
		return nil
	}

	existing, err := repo.FindByProfileAndType(post.ProfileID, domain.CvSkill)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[entry.Content] = struct{}{}
	}

	for _, tag := range post.Tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		entry := &domain.CvEntry{
			ProfileID: post.ProfileID,
			Type:      domain.CvSkill,
			Content:   tag,
			PostID:    post.ID,
		}
		if err := repo.Create(entry); err != nil {
			return err
		}
		seen[tag] = struct{}{}
	}
	return nil
}

func (s *cvService) RemoveEntriesForPost(tx *gorm.DB, postID int64) error {
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	// Look up the owning profile first so the cache can be dropped
	entries, err := repo.FindByPostID(postID)
	if err != nil {
		return err
	}

	if err := repo.DeleteByPostID(postID); err != nil {
		return err
	}

	if len(entries) > 0 {
		s.invalidate(entries[0].ProfileID)
	}
	return nil
}

func (s *cvService) EntriesForProfile(ctx context.Context, profileID int64) ([]*domain.CvEntry, error) {
	if s.cache != nil {
		var cached []*domain.CvEntry
		if err := s.cache.GetCvEntries(ctx, profileID, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.repo.FindByProfile(profileID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetCvEntries(ctx, profileID, entries)
	}
	return entries, nil
}

func (s *cvService) EntriesForProfileAndType(_ context.Context, profileID int64, cvType domain.CvType) ([]*domain.CvEntry, error) {
	return s.repo.FindByProfileAndType(profileID, cvType)
}

func (s *cvService) invalidate(profileID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateCvEntries(context.Background(), profileID)
	}
}

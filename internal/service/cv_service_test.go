package service

import (
	"context"
	"testing"
	"time"

	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Post{},
		&domain.CvEntry{},
		&domain.Connection{},
		&domain.Job{},
		&domain.Reaction{},
	))
	return db
}

func postTypePtr(t domain.PostType) *domain.PostType {
	return &t
}

func setupCvService(t *testing.T) (CvService, repository.CvEntryRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	repo := repository.NewCvEntryRepository(db)
	return NewCvService(repo, nil), repo, db
}

func TestUpdateFromPost_HeadingEntry(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	post := &domain.Post{
		ID:        1,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeProject),
		CvHeading: "React inventory dashboard",
		Tags:      domain.StringList{"React", "Node.js"},
	}

	require.NoError(t, svc.UpdateFromPost(nil, post))

	projects, err := repo.FindByProfileAndType(7, domain.CvProject)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "React inventory dashboard", projects[0].Content)
	assert.Equal(t, int64(1), projects[0].PostID)

	skills, err := repo.FindByProfileAndType(7, domain.CvSkill)
	require.NoError(t, err)
	assert.Len(t, skills, 2)
}

func TestUpdateFromPost_ReplacesHeadingOnReclassification(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	post := &domain.Post{
		ID:        1,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeProject),
		CvHeading: "Old heading",
	}
	require.NoError(t, svc.UpdateFromPost(nil, post))

	post.Type = postTypePtr(domain.TypeExperience)
	post.CvHeading = "New heading"
	require.NoError(t, svc.UpdateFromPost(nil, post))

	all, err := repo.FindByPostID(1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.CvExperience, all[0].Type)
	assert.Equal(t, "New heading", all[0].Content)
}

func TestUpdateFromPost_SkillPostHasNoHeadingEntry(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	post := &domain.Post{
		ID:        2,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeSkill),
		CvHeading: "should not appear as a heading",
		Tags:      domain.StringList{"Go"},
	}
	require.NoError(t, svc.UpdateFromPost(nil, post))

	entries, err := repo.FindByProfile(7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.CvSkill, entries[0].Type)
	assert.Equal(t, "Go", entries[0].Content)
}

func TestUpdateFromPost_EducationHasNoCvSection(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	post := &domain.Post{
		ID:        3,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeEducation),
		CvHeading: "BSc in CS",
	}
	require.NoError(t, svc.UpdateFromPost(nil, post))

	entries, err := repo.FindByProfile(7)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateFromPost_UnclassifiedPostOnlyAddsNothing(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	post := &domain.Post{
		ID:        4,
		ProfileID: 7,
		Type:      nil,
		CvHeading: "fallback heading",
		Tags:      domain.StringList{},
	}
	require.NoError(t, svc.UpdateFromPost(nil, post))

	entries, err := repo.FindByProfile(7)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateFromPost_SkillDeduplication(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	first := &domain.Post{
		ID:        1,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeProject),
		CvHeading: "First",
		Tags:      domain.StringList{"Go", "Redis"},
	}
	second := &domain.Post{
		ID:        2,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeProject),
		CvHeading: "Second",
		Tags:      domain.StringList{"Go", "MySQL"},
	}

	require.NoError(t, svc.UpdateFromPost(nil, first))
	require.NoError(t, svc.UpdateFromPost(nil, second))

	skills, err := repo.FindByProfileAndType(7, domain.CvSkill)
	require.NoError(t, err)

	contents := make([]string, len(skills))
	for i, s := range skills {
		contents[i] = s.Content
	}
	assert.ElementsMatch(t, []string{"Go", "Redis", "MySQL"}, contents)
}

func TestUpdateFromPost_SkillDedupScopedPerProfile(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	a := &domain.Post{ID: 1, ProfileID: 7, Tags: domain.StringList{"Go"}}
	b := &domain.Post{ID: 2, ProfileID: 8, Tags: domain.StringList{"Go"}}

	require.NoError(t, svc.UpdateFromPost(nil, a))
	require.NoError(t, svc.UpdateFromPost(nil, b))

	forA, err := repo.FindByProfileAndType(7, domain.CvSkill)
	require.NoError(t, err)
	forB, err := repo.FindByProfileAndType(8, domain.CvSkill)
	require.NoError(t, err)
	assert.Len(t, forA, 1)
	assert.Len(t, forB, 1)
}

func TestUpdateFromPost_Idempotent(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	post := &domain.Post{
		ID:        1,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeAchievement),
		CvHeading: "Hackathon winner",
		Tags:      domain.StringList{"Teamwork"},
	}

	require.NoError(t, svc.UpdateFromPost(nil, post))
	require.NoError(t, svc.UpdateFromPost(nil, post))
	require.NoError(t, svc.UpdateFromPost(nil, post))

	entries, err := repo.FindByProfile(7)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // one heading, one skill
}

func TestRemoveEntriesForPost(t *testing.T) {
	svc, repo, _ := setupCvService(t)

	post := &domain.Post{
		ID:        1,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeProject),
		CvHeading: "To be removed",
		Tags:      domain.StringList{"Go"},
	}
	require.NoError(t, svc.UpdateFromPost(nil, post))

	require.NoError(t, svc.RemoveEntriesForPost(nil, 1))

	entries, err := repo.FindByPostID(1)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// removing again is a no-op
	require.NoError(t, svc.RemoveEntriesForPost(nil, 1))
}

func TestEntriesForProfile(t *testing.T) {
	svc, _, _ := setupCvService(t)

	post := &domain.Post{
		ID:        1,
		ProfileID: 7,
		Type:      postTypePtr(domain.TypeExperience),
		CvHeading: "Backend engineer at Initech",
		Tags:      domain.StringList{"Go"},
	}
	require.NoError(t, svc.UpdateFromPost(nil, post))

	entries, err := svc.EntriesForProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLockProfile_SerializesPerProfile(t *testing.T) {
	svc, _, _ := setupCvService(t)

	unlock := svc.LockProfile(7)

	acquired := make(chan struct{})
	go func() {
		second := svc.LockProfile(7)
		close(acquired)
		second()
	}()

	select {
	case <-acquired:
		t.Fatal("second caller acquired the lock while it was held")
	case <-time.After(50 * time.Millisecond):
	}

	// a different profile is not blocked
	other := svc.LockProfile(8)
	other()

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second caller never acquired the lock after release")
	}
}

package link

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/httperr"
	"github.com/advisorkit/scheduler/internal/models"
)

// fakeLinkRepo covers only the methods the link use cases touch; the
// embedded interface panics on anything else.
type fakeLinkRepo struct {
	domain.Repository

	slugAlwaysExists bool
	createErr        error

	created []*models.SchedulingLink
	deleted map[uint]bool
}

func (r *fakeLinkRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	if r.slugAlwaysExists {
		return true, nil
	}
	for _, l := range r.created {
		if l.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLinkRepo) CreateLink(_ context.Context, link *models.SchedulingLink) error {
	if r.createErr != nil {
		return r.createErr
	}
	link.ID = uint(len(r.created) + 1)
	r.created = append(r.created, link)
	return nil
}

func (r *fakeLinkRepo) DeleteLink(_ context.Context, advisorID, linkID uint) error {
	if r.deleted == nil || !r.deleted[linkID] {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func intPtr(v int) *int { return &v }

func validInput() CreateLinkInput {
	return CreateLinkInput{
		AdvisorID:            1,
		MeetingLengthMinutes: 30,
		MaxAdvanceDays:       30,
		CustomQuestions: []models.CustomQuestion{
			{Question: "What do you want to discuss?", Required: true},
		},
	}
}

func TestCreateLink_Success(t *testing.T) {
	repo := &fakeLinkRepo{}
	uc := NewCreateLink(repo, nil)

	created, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.Len(t, created.Slug, slugLength)
	for _, ch := range created.Slug {
		assert.True(t, strings.ContainsRune(slugAlphabet, ch), "slug char %q outside alphabet", ch)
	}

	assert.Equal(t, uint(1), created.AdvisorID)
	assert.Len(t, repo.created, 1)
}

func TestCreateLink_SlugsAreUniquePerCall(t *testing.T) {
	repo := &fakeLinkRepo{}
	uc := NewCreateLink(repo, nil)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		created, err := uc.Execute(context.Background(), validInput())
		require.NoError(t, err)
		assert.False(t, seen[created.Slug])
		seen[created.Slug] = true
	}
}

func TestCreateLink_ValidationBounds(t *testing.T) {
	uc := NewCreateLink(&fakeLinkRepo{}, nil)

	in := validInput()
	in.MeetingLengthMinutes = 10
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidMeetingLength))

	in = validInput()
	in.MaxAdvanceDays = 400
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidAdvanceDays))

	in = validInput()
	in.UsageLimit = intPtr(0)
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidUsageLimit))
}

func TestCreateLink_FiltersBlankQuestions(t *testing.T) {
	repo := &fakeLinkRepo{}
	uc := NewCreateLink(repo, nil)

	in := validInput()
	in.CustomQuestions = []models.CustomQuestion{
		{Question: "   ", Required: true},
		{Question: "Real question", Required: false},
	}

	created, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, created.CustomQuestions, 1)
	assert.Equal(t, "Real question", created.CustomQuestions[0].Question)
}

func TestCreateLink_AllQuestionsBlank(t *testing.T) {
	uc := NewCreateLink(&fakeLinkRepo{}, nil)

	in := validInput()
	in.CustomQuestions = []models.CustomQuestion{{Question: "  "}}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCustomQuestions))
}

func TestCreateLink_SlugCollisionsExhaust(t *testing.T) {
	uc := NewCreateLink(&fakeLinkRepo{slugAlwaysExists: true}, nil)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlugExhausted))
}

func TestCreateLink_InsertRaceCountsAsCollision(t *testing.T) {
	// SlugExists says free, but another writer wins the insert every time.
	uc := NewCreateLink(&fakeLinkRepo{createErr: gorm.ErrDuplicatedKey}, nil)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlugExhausted))
}

func TestDeleteLink_NotFound(t *testing.T) {
	uc := NewDeleteLink(&fakeLinkRepo{}, nil)

	err := uc.Execute(context.Background(), 1, 42)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeLinkNotFound))
}

func TestDeleteLink_Success(t *testing.T) {
	uc := NewDeleteLink(&fakeLinkRepo{deleted: map[uint]bool{42: true}}, nil)

	err := uc.Execute(context.Background(), 1, 42)
	assert.NoError(t, err)
}

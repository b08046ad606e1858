package portfolio

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	byWS   map[uint]models.Portfolio
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byWS: map[uint]models.Portfolio{}}
}

func (f *fakeRepo) GetByWorkspace(_ context.Context, workspaceID uint) (*models.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byWS[workspaceID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*models.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byWS {
		if p.Slug == slug {
			c := p
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) SlugTakenByOther(_ context.Context, slug string, workspaceID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ws, p := range f.byWS {
		if p.Slug == slug && ws != workspaceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Save(_ context.Context, p *models.Portfolio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	}
	f.byWS[p.WorkspaceID] = *p
	return nil
}

func TestSlugRules(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSavePortfolio(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, SaveInput{WorkspaceID: 1, Slug: "My Cool Slug!"})
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))

	p, err := uc.Execute(ctx, SaveInput{WorkspaceID: 1, Slug: "my-cool-slug", DisplayName: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.DisplayName)
	assert.True(t, p.IsPublished)

	_, err = uc.Execute(ctx, SaveInput{WorkspaceID: 2, Slug: "my-cool-slug"})
	assert.True(t, httperr.IsBusiness(err, "slug_taken"))

	again, err := uc.Execute(ctx, SaveInput{WorkspaceID: 1, Slug: "my-cool-slug", Headline: "Designer"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, "Designer", again.Headline)
}

func TestSaveRejectsFirstBadSocial(t *testing.T) {
	uc := NewSavePortfolio(newFakeRepo(), nil, nil)
	_, err := uc.Execute(context.Background(), SaveInput{
		WorkspaceID: 1,
		Slug:        "studio",
		Socials:     models.Socials{Email: "bad", GitHub: "also bad"},
	})
	assert.EqualError(t, err, "Email must be a valid email address")
}

func TestSaveInvalidatesCacheAndUnpublish(t *testing.T) {
	repo := newFakeRepo()
	c := cache.NewMemory()
	ctx := context.Background()
	uc := NewSavePortfolio(repo, c, nil)

	_, err := uc.Execute(ctx, SaveInput{WorkspaceID: 1, Slug: "old"})
	require.NoError(t, err)
	c.Set(ctx, cache.PortfolioKey("old"), []byte("{}"))

	hidden := false
	_, err = uc.Execute(ctx, SaveInput{WorkspaceID: 1, Slug: "new", IsPublished: &hidden})
	require.NoError(t, err)

	_, hit := c.Get(ctx, cache.PortfolioKey("old"))
	assert.False(t, hit)

	_, err = NewGetPublicPortfolio(repo).Execute(ctx, "new")
	assert.Equal(t, http.StatusNotFound, httperr.StatusOf(err))
}

func TestCheckSlug(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	_, err := NewSavePortfolio(repo, nil, nil).Execute(ctx, SaveInput{WorkspaceID: 1, Slug: "studio"})
	require.NoError(t, err)

	uc := NewCheckSlug(repo)

	res, err := uc.Execute(ctx, 2, "Studio")
	require.NoError(t, err)
	assert.False(t, res.Available)

	res, err = uc.Execute(ctx, 1, "studio")
	require.NoError(t, err)
	assert.True(t, res.Available)

	res, err = uc.Execute(ctx, 2, "no spaces")
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.NotEmpty(t, res.Message)
}

func TestGetPortfolioMissing(t *testing.T) {
	p, err := NewGetPortfolio(newFakeRepo()).Execute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

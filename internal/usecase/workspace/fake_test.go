package workspace

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type fakeRepo struct {
	mu         sync.Mutex
	nextID     uint
	users      map[uint]models.User
	workspaces map[uint]models.Workspace

	createWorkspaceErr error
	deletedUsers       []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:      map[uint]models.User{},
		workspaces: map[uint]models.Workspace{},
	}
}

func cloneUser(u models.User) models.User {
	u.Workspaces = append([]models.UserWorkspace(nil), u.Workspaces...)
	return u
}

func cloneWorkspace(w models.Workspace) models.Workspace {
	w.Members = append([]models.WorkspaceMember(nil), w.Members...)
	return w
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeRepo) UserIDExists(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.id()
	f.users[u.ID] = cloneUser(*u)
	return nil
}

func (f *fakeRepo) SaveUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = cloneUser(*u)
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	f.deletedUsers = append(f.deletedUsers, id)
	return nil
}

func (f *fakeRepo) ListUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (f *fakeRepo) GetWorkspaceByID(_ context.Context, id uint) (*models.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workspaces[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := cloneWorkspace(w)
	return &c, nil
}

func (f *fakeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.workspaces {
		if strings.EqualFold(w.Slug, slug) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateWorkspace(_ context.Context, w *models.Workspace) error {
	if f.createWorkspaceErr != nil {
		return f.createWorkspaceErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w.ID = f.id()
	f.workspaces[w.ID] = cloneWorkspace(*w)
	return nil
}

func (f *fakeRepo) SaveWorkspace(_ context.Context, w *models.Workspace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workspaces[w.ID] = cloneWorkspace(*w)
	return nil
}

func (f *fakeRepo) ListWorkspacesByIDs(_ context.Context, ids []uint) ([]models.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Workspace
	for _, id := range ids {
		if w, ok := f.workspaces[id]; ok {
			out = append(out, cloneWorkspace(w))
		}
	}
	return out, nil
}

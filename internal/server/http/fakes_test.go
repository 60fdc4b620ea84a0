package http

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/dmitrijs2005/gophusers/internal/server/models"
)

// fakeUserService is an in-memory UserService with hooks for forcing errors
// and counters for asserting which calls were made.
type fakeUserService struct {
	mu     sync.Mutex
	users  map[string]models.User
	order  []string
	nextID int
	calls  map[string]int

	findByEmailErr error
	findAllErr     error
	createErr      error
	updateErr      error
	removeErr      error
	panicOnFindAll bool
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: map[string]models.User{}, calls: map[string]int{}}
}

func (f *fakeUserService) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeUserService) stored(id string) (models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	return u, ok
}

func (f *fakeUserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Create"]++
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, errors.Join(common.ErrorAlreadyExists, errors.New("unique violation"))
		}
	}
	f.nextID++
	out := *user
	out.ID = fmt.Sprintf("id-%d", f.nextID)
	f.users[out.ID] = out
	f.order = append(f.order, out.ID)
	return &out, nil
}

func (f *fakeUserService) FindAll(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["FindAll"]++
	if f.panicOnFindAll {
		panic("boom")
	}
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	out := make([]models.User, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.users[id])
	}
	return out, nil
}

func (f *fakeUserService) FindOne(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["FindOne"]++
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (f *fakeUserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["FindByEmail"]++
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUserService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Update"]++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserService) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Remove"]++
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.users, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeAuthService struct {
	token string
	err   error
	got   [2]string
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	f.got = [2]string{email, password}
	return f.token, f.err
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) Ping(context.Context) error { return f.err }

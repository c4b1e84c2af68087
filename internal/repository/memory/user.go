package memory

import (
	"context"
	"sync"

	"github.com/example/ec-commerce/internal/domain/user"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*user.User)}
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) FindForUpdate(ctx context.Context, id string) (*user.User, error) {
	return s.FindByID(ctx, id)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (s *UserStore) Save(ctx context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *u
	s.users[u.ID] = &cp
	saved := cp
	return &saved, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/example/ec-commerce/internal/domain/cart"
)

type CartStore struct {
	mu    sync.RWMutex
	items map[string]*cart.Item
}

func NewCartStore() *CartStore {
	return &CartStore{items: make(map[string]*cart.Item)}
}

func (s *CartStore) FindItemByID(ctx context.Context, id string) (*cart.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, cart.ErrCartItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *CartStore) FindItemsByUserID(ctx context.Context, userID string) ([]*cart.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*cart.Item, 0)
	for _, item := range s.items {
		if item.UserID == userID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *CartStore) FindItemByUserAndProduct(ctx context.Context, userID, productID string) (*cart.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.UserID == userID && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, cart.ErrCartItemNotFound
}

func (s *CartStore) SaveItem(ctx context.Context, item *cart.Item) (*cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *item
	s.items[item.ID] = &cp
	saved := cp
	return &saved, nil
}

func (s *CartStore) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return cart.ErrCartItemNotFound
	}
	delete(s.items, id)
	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/example/ec-commerce/internal/domain/order"
)

type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*order.Order)}
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (s *OrderStore) FindForUpdate(ctx context.Context, id string) (*order.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *OrderStore) FindByUserID(ctx context.Context, userID string, page, size int) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*order.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	// Newest first, the way an order history is read.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	start, end := paginate(len(matched), page, size)
	out := make([]*order.Order, 0, end-start)
	for _, o := range matched[start:end] {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (s *OrderStore) CountByUserID(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, o := range s.orders {
		if o.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *OrderStore) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.ID] = copyOrder(o)
	return copyOrder(o), nil
}

// copyOrder deep-copies the item slice so callers cannot alias stored state.
func copyOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = make([]order.Item, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}

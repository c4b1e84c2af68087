package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/ec-commerce/internal/domain/product"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]*product.Product)}
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// FindForUpdate matches FindByID here; the caller holds the product's key
// lock, which is what serializes the read-mutate-save sequence.
func (s *ProductStore) FindForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return s.FindByID(ctx, id)
}

func (s *ProductStore) FindAll(ctx context.Context, page, size int, search string) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.match(search)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	start, end := paginate(len(matched), page, size)
	out := make([]*product.Product, 0, end-start)
	for _, p := range matched[start:end] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *ProductStore) Count(ctx context.Context, search string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.match(search)), nil
}

func (s *ProductStore) FindTopSelling(ctx context.Context, limit int) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.match("")
	sort.Slice(all, func(i, j int) bool {
		if all[i].SoldQuantity != all[j].SoldQuantity {
			return all[i].SoldQuantity > all[j].SoldQuantity
		}
		return all[i].ID < all[j].ID
	})
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*product.Product, 0, len(all))
	for _, p := range all {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *ProductStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.products[p.ID] = &cp
	saved := cp
	return &saved, nil
}

// match must be called with at least the read lock held.
func (s *ProductStore) match(search string) []*product.Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]*product.Product, 0, len(s.products))
	for _, p := range s.products {
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/example/ec-commerce/internal/domain/product"
	"github.com/example/ec-commerce/internal/repository"
)

const topSellingLimit = 5

// ProductCache caches the top-selling listing. A miss or a cache error just
// falls through to the repository.
type ProductCache interface {
	GetTopSelling(ctx context.Context) ([]*product.Product, error)
	SetTopSelling(ctx context.Context, products []*product.Product) error
}

// ProductUseCase serves catalog reads. It never mutates stock; that belongs
// to order creation and cancellation.
type ProductUseCase struct {
	products repository.ProductRepository
	cache    ProductCache
}

func NewProductUseCase(products repository.ProductRepository, cache ProductCache) *ProductUseCase {
	return &ProductUseCase{products: products, cache: cache}
}

// CreateProduct registers a catalog entry with its opening stock.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, name, description string, price, stock int) (*product.Product, error) {
	p, err := product.New(uuid.New().String(), name, description, price, stock)
	if err != nil {
		return nil, err
	}
	return uc.products.Save(ctx, p)
}

func (uc *ProductUseCase) GetProducts(ctx context.Context, page, size int, search string) ([]*product.Product, error) {
	return uc.products.FindAll(ctx, page, size, search)
}

func (uc *ProductUseCase) GetProductCount(ctx context.Context, search string) (int, error) {
	return uc.products.Count(ctx, search)
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, productID string) (*product.Product, error) {
	return uc.products.FindByID(ctx, productID)
}

// GetTopProducts returns the best sellers, served from cache when warm.
func (uc *ProductUseCase) GetTopProducts(ctx context.Context) ([]*product.Product, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetTopSelling(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	top, err := uc.products.FindTopSelling(ctx, topSellingLimit)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetTopSelling(ctx, top); err != nil {
			log.Printf("[Product] top selling cache write failed: %v", err)
		}
	}
	return top, nil
}

// CheckStock is the advisory read used by the cart; order creation re-checks
// under the product lock.
func (uc *ProductUseCase) CheckStock(ctx context.Context, productID string, quantity int) (bool, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	return p.HasEnoughStock(quantity), nil
}

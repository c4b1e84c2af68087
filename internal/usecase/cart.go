package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/ec-commerce/internal/domain/cart"
	"github.com/example/ec-commerce/internal/domain/product"
	"github.com/example/ec-commerce/internal/repository"
)

// CartUseCase manages cart items. Its stock checks are advisory; they keep
// obviously dead adds out of carts but reserve nothing.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

func (uc *CartUseCase) GetCart(ctx context.Context, userID string) ([]*cart.Item, error) {
	return uc.carts.FindItemsByUserID(ctx, userID)
}

// AddToCart adds a product to the user's cart, merging with an existing line
// for the same product.
func (uc *CartUseCase) AddToCart(ctx context.Context, userID, productID string, quantity int) (*cart.Item, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidCartItem
	}

	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.carts.FindItemByUserAndProduct(ctx, userID, productID)
	if err == nil {
		quantity += existing.Quantity
	}

	if !p.HasEnoughStock(quantity) {
		return nil, product.ErrInsufficientStock
	}

	if existing != nil {
		if err := existing.UpdateQuantity(quantity); err != nil {
			return nil, err
		}
		return uc.carts.SaveItem(ctx, existing)
	}

	item, err := cart.NewItem(uuid.New().String(), userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	return uc.carts.SaveItem(ctx, item)
}

// UpdateQuantity replaces a cart line's quantity.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*cart.Item, error) {
	item, err := uc.carts.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	p, err := uc.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.HasEnoughStock(quantity) {
		return nil, product.ErrInsufficientStock
	}

	if err := item.UpdateQuantity(quantity); err != nil {
		return nil, err
	}
	return uc.carts.SaveItem(ctx, item)
}

func (uc *CartUseCase) RemoveFromCart(ctx context.Context, itemID string) error {
	return uc.carts.DeleteItem(ctx, itemID)
}

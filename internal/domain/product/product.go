package product

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is the catalog entry plus its live stock counter. StockQuantity is
// only mutated through DecreaseStock/IncreaseStock, and callers must hold the
// product's lock while doing so.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int       `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	SoldQuantity  int       `json:"sold_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func New(id, name, description string, price, stockQuantity int) (*Product, error) {
	if id == "" || name == "" {
		return nil, ErrInvalidProduct
	}
	if price < 0 || stockQuantity < 0 {
		return nil, ErrInvalidProduct
	}
	now := time.Now()
	return &Product{
		ID:            id,
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// DecreaseStock performs the check-and-decrement as one step. The check must
// not be separated from the mutation: a stale read would let two callers both
// take the last unit.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.IsOutOfStock() {
		return ErrOutOfStock
	}
	if !p.HasEnoughStock(quantity) {
		return ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	p.SoldQuantity += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IncreaseStock restores stock, used for cancellations and restocking.
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.StockQuantity += quantity
	if p.SoldQuantity >= quantity {
		p.SoldQuantity -= quantity
	}
	p.UpdatedAt = time.Now()
	return nil
}

// HasEnoughStock is an advisory read; it is never a substitute for the
// locked DecreaseStock.
func (p *Product) HasEnoughStock(quantity int) bool {
	return p.StockQuantity >= quantity
}

func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}

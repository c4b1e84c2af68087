package cart

import (
	"errors"
	"time"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidCartItem  = errors.New("invalid cart item")
)

// Item is a user's intent to buy; it holds no stock. Stock checks against a
// cart are advisory only, the locked decrement at order time is what counts.
type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

func NewItem(id, userID, productID string, quantity int) (*Item, error) {
	if id == "" || userID == "" || productID == "" {
		return nil, ErrInvalidCartItem
	}
	if quantity <= 0 {
		return nil, ErrInvalidCartItem
	}
	return &Item{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}, nil
}

// UpdateQuantity replaces the quantity; zero or negative is rejected, removal
// is a separate operation.
func (i *Item) UpdateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidCartItem
	}
	i.Quantity = quantity
	return nil
}

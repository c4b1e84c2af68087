package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ec-commerce/internal/domain/product"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, description, price, stock_quantity, sold_quantity, created_at, updated_at`

func (s *ProductStore) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (s *ProductStore) FindForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return s.FindByID(ctx, id)
}

func (s *ProductStore) FindAll(ctx context.Context, page, size int, search string) ([]*product.Product, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		 ORDER BY created_at, id
		 LIMIT $2 OFFSET $3`,
		search, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *ProductStore) Count(ctx context.Context, search string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`,
		search).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (s *ProductStore) FindTopSelling(ctx context.Context, limit int) ([]*product.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 ORDER BY sold_quantity DESC, id
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top selling: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *ProductStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			stock_quantity = EXCLUDED.stock_quantity,
			sold_quantity = EXCLUDED.sold_quantity,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Name, p.Description, p.Price, p.StockQuantity, p.SoldQuantity, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	cp := *p
	return &cp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.SoldQuantity, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]*product.Product, error) {
	out := make([]*product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

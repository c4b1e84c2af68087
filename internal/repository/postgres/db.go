// Package postgres implements the repository ports on PostgreSQL via
// database/sql and lib/pq. Saves are upserts keyed on the record ID.
//
// FindForUpdate matches FindByID here: the service runs as a single process
// and the lock manager provides exclusion; multi-node row locking is out of
// scope. A multi-node deployment would put SELECT ... FOR UPDATE behind the
// same port without touching the use cases.
package postgres

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func Connect(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// InitSchema creates the tables when they do not exist yet.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		point         INTEGER NOT NULL DEFAULT 0 CHECK (point >= 0),
		created_at    TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS products (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		price          INTEGER NOT NULL CHECK (price >= 0),
		stock_quantity INTEGER NOT NULL CHECK (stock_quantity >= 0),
		sold_quantity  INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS coupons (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		discount_amount INTEGER NOT NULL CHECK (discount_amount > 0),
		issue_quantity  INTEGER NOT NULL CHECK (issue_quantity > 0),
		issued_quantity INTEGER NOT NULL DEFAULT 0,
		valid_from      TIMESTAMPTZ NOT NULL,
		valid_to        TIMESTAMPTZ NOT NULL,
		CHECK (issued_quantity >= 0 AND issued_quantity <= issue_quantity)
	);

	CREATE TABLE IF NOT EXISTS user_coupons (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		coupon_id  TEXT NOT NULL,
		order_id   TEXT NOT NULL DEFAULT '',
		is_used    BOOLEAN NOT NULL DEFAULT FALSE,
		issued_at  TIMESTAMPTZ NOT NULL,
		used_at    TIMESTAMPTZ,
		expired_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_user_coupons_user ON user_coupons(user_id);

	CREATE TABLE IF NOT EXISTS orders (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		status          TEXT NOT NULL,
		total_amount    INTEGER NOT NULL CHECK (total_amount >= 0),
		discount_amount INTEGER NOT NULL DEFAULT 0,
		used_coupon_id  TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL,
		CHECK (discount_amount >= 0 AND discount_amount <= total_amount)
	);
	CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

	CREATE TABLE IF NOT EXISTS order_items (
		order_id   TEXT NOT NULL REFERENCES orders(id),
		product_id TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		price      INTEGER NOT NULL CHECK (price >= 0),
		PRIMARY KEY (order_id, product_id)
	);

	CREATE TABLE IF NOT EXISTS cart_items (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		added_at   TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, product_id)
	);
	CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id);
	`
	_, err := db.Exec(schema)
	return err
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the shop tables if they are absent. Order ids come
// from a sequence so they are monotonic and never reused; customers are
// unique on (name, address); order lines key on (order, product).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS categories (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			priority INT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS suppliers (
			id   BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			price       NUMERIC(10,2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			stock       INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			category    TEXT NOT NULL REFERENCES categories(id),
			supplier    BIGINT NOT NULL REFERENCES suppliers(id)
		);

		CREATE TABLE IF NOT EXISTS customers (
			id      BIGSERIAL PRIMARY KEY,
			name    TEXT NOT NULL,
			address TEXT NOT NULL,
			UNIQUE (name, address)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id         BIGSERIAL PRIMARY KEY,
			customer   BIGINT NOT NULL REFERENCES customers(id),
			date       TIMESTAMPTZ NOT NULL,
			dispatched BOOLEAN NOT NULL DEFAULT false
		);

		CREATE TABLE IF NOT EXISTS order_lines (
			order_id BIGINT NOT NULL REFERENCES orders(id),
			product  TEXT NOT NULL REFERENCES products(id),
			quantity INT NOT NULL CHECK (quantity >= 1),
			price    NUMERIC(10,2) NOT NULL,
			PRIMARY KEY (order_id, product)
		);
	`
	_, err := pool.Exec(ctx, stmt)
	return err
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "shop_api/internal/domain/order"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Store persists a validated, price-reconciled order in one transaction:
// customer upsert, order header, then every line. The transaction runs on
// its own connection from the pool, so concurrent placements cannot
// interleave and either all rows commit or none do.
func (r *OrderRepository) Store(ctx context.Context, o *domain.Order) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("order is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var customerID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO customers (name, address)
		VALUES ($1, $2)
		ON CONFLICT (name, address) DO UPDATE SET name = EXCLUDED.name
		RETURNING id;
	`, o.Buyer, o.Address).Scan(&customerID)
	if err != nil {
		return 0, fmt.Errorf("upsert customer: %w", err)
	}

	createdAt := time.Now().UTC()
	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer, date, dispatched)
		VALUES ($1, $2, false)
		RETURNING id;
	`, customerID, createdAt).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, line := range o.Lines {
		batch.Queue(`
			INSERT INTO order_lines (order_id, product, quantity, price)
			VALUES ($1, $2, $3, $4::numeric);
		`, orderID, line.ProductID, line.Quantity, line.Price.StringFixed(2))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert order lines: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	o.CreatedAt = createdAt
	o.Dispatched = false
	return orderID, nil
}

// FindByID joins customer, header, lines and products into the full order
// view, lines ordered by product name.
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, l.quantity, l.price, c.name, c.address, o.date, o.dispatched
		FROM customers c
		JOIN orders o ON c.id = o.customer
		JOIN order_lines l ON l.order_id = o.id
		JOIN products p ON l.product = p.id
		WHERE o.id = $1
		ORDER BY p.name;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	defer rows.Close()

	var o *domain.Order
	for rows.Next() {
		var (
			productID    string
			productTitle string
			quantity     int
			price        string
			buyer        string
			address      string
			date         time.Time
			dispatched   bool
		)
		if err := rows.Scan(&productID, &productTitle, &quantity, &price, &buyer, &address, &date, &dispatched); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		if o == nil {
			o = &domain.Order{
				ID:         id,
				Buyer:      buyer,
				Address:    address,
				CreatedAt:  date,
				Dispatched: dispatched,
			}
		}

		lineP, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse line price: %w", err)
		}
		o.Lines = append(o.Lines, domain.Line{
			ProductID:    productID,
			ProductTitle: productTitle,
			Quantity:     quantity,
			Price:        lineP,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read order rows: %w", err)
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// MarkDispatched flips the dispatched flag, keyed by order id only.
func (r *OrderRepository) MarkDispatched(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `UPDATE orders SET dispatched = true WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("update dispatched: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

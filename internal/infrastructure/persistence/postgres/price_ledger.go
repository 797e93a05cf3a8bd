package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PriceLedger reads authoritative product prices. It shares the read pool
// with the other query paths.
type PriceLedger struct {
	pool *pgxpool.Pool
}

func NewPriceLedger(pool *pgxpool.Pool) *PriceLedger {
	return &PriceLedger{pool: pool}
}

// CountMatching counts how many of the submitted (product id, price)
// pairs match a stored product exactly at two decimal places, in one
// parameterized query. A count below the number of pairs means some
// product is unknown or some price is stale; the query cannot tell which.
func (l *PriceLedger) CountMatching(ctx context.Context, pairs map[string]decimal.Decimal) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}

	clauses := make([]string, 0, len(pairs))
	args := make([]interface{}, 0, len(pairs)*2)
	for id, price := range pairs {
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(id = $%d AND price = $%d::numeric)", n+1, n+2))
		args = append(args, id, price.StringFixed(2))
	}

	query := "SELECT count(*) FROM products WHERE " + strings.Join(clauses, " OR ") + ";"

	var count int
	if err := l.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count matching prices: %w", err)
	}
	return count, nil
}

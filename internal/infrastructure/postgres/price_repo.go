package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

// PriceRepository reads the precomputed route-price table. The table is
// populated out of band by the training pipeline; this side is read-only.
type PriceRepository struct {
	pool *pgxpool.Pool
}

func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// Lookup finds the recommended price for the exact ordered pair,
// case-insensitively. The reversed-direction fallback lives in the use
// case, not here.
func (r *PriceRepository) Lookup(ctx context.Context, fromCity, toCity string) (float64, error) {
	const sql = `
		SELECT recommended_price
		FROM price_recommendations
		WHERE LOWER(from_city) = LOWER($1) AND LOWER(to_city) = LOWER($2)
		LIMIT 1
	`

	var price float64
	err := r.pool.QueryRow(ctx, sql, fromCity, toCity).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: no recommended price for %s - %s", apperr.ErrNotFound, fromCity, toCity)
		}
		return 0, fmt.Errorf("lookup recommended price: %w", err)
	}

	return price, nil
}

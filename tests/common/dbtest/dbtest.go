//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// bookingTables in FK-safe truncation order.
var bookingTables = []string{
	"reservation_transitions",
	"idempotency_keys",
	"reservations",
	"inventory_days",
}

// ResetDB truncates all booking tables so each test starts from an empty
// ledger. The schema itself stays in place.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range bookingTables {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed external transaction IDs so that
// duplicate webhook deliveries can be rejected cheaply before touching
// the ledger. It is advisory only: the authoritative duplicate check is
// the transactional one inside the payment repository.
type IdempotencyStore interface {
	// MarkProcessed marks a transaction ID as processed with a TTL.
	// Returns true if the ID was newly marked, false if already present.
	MarkProcessed(ctx context.Context, transactionID string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a transaction ID has already been marked.
	IsProcessed(ctx context.Context, transactionID string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for processed transaction IDs
	TTL time.Duration

	// Enabled determines whether the advisory fast path is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}

// Package sequence allocates per-stream sequence numbers for outgoing
// payment events, so consumers can order deliveries that arrive shuffled.
package sequence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Store is the subset of the pgx pool the allocator needs.
type Store interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Allocator hands out strictly increasing sequence numbers per stream key.
// Counters live in the event_sequence table and survive restarts; the upsert
// makes each allocation atomic, so concurrent publishers for the same stream
// never observe the same number.
type Allocator struct {
	store Store
}

func NewAllocator(store Store) *Allocator {
	return &Allocator{store: store}
}

// NextSequence advances the stream's counter and returns the new value. The
// first allocation for an unknown stream returns 1.
func (a *Allocator) NextSequence(ctx context.Context, streamKey string) (int64, error) {
	var seq int64
	err := a.store.QueryRow(ctx, `
		INSERT INTO event_sequence (partition_key, last_sequence)
		VALUES ($1, 1)
		ON CONFLICT (partition_key)
		DO UPDATE SET last_sequence = event_sequence.last_sequence + 1, updated_at = now()
		RETURNING last_sequence
	`, streamKey).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("allocate sequence for %s: %w", streamKey, err)
	}
	return seq, nil
}

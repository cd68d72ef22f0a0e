package integration

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/payments-service-go/internal/db"
	"github.com/andreasstove999/payments-service-go/internal/sequence"
	"github.com/andreasstove999/payments-service-go/internal/testutil"
)

func TestSequenceAllocationAgainstPostgres(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	dsn, terminate := testutil.StartPostgres(ctx, t)
	defer terminate()

	logger := log.New(io.Discard, "", log.LstdFlags)
	require.NoError(t, db.RunMigrations(dsn, logger))

	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	alloc := sequence.NewAllocator(pool)

	// Same stream counts up from 1 without gaps.
	for want := int64(1); want <= 5; want++ {
		got, err := alloc.NextSequence(ctx, "payment-1")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// A different stream starts its own counter.
	got, err := alloc.NextSequence(ctx, "payment-2")
	require.NoError(t, err)
	require.EqualValues(t, 1, got)

	// The first stream is unaffected by the second.
	got, err = alloc.NextSequence(ctx, "payment-1")
	require.NoError(t, err)
	require.EqualValues(t, 6, got)

	// Concurrent allocations on one stream never hand out duplicates.
	const workers = 8
	results := make(chan int64, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			seq, err := alloc.NextSequence(ctx, "payment-3")
			if err != nil {
				errs <- err
				return
			}
			results <- seq
		}()
	}
	seen := make(map[int64]bool, workers)
	for i := 0; i < workers; i++ {
		select {
		case err := <-errs:
			t.Fatalf("concurrent allocation: %v", err)
		case seq := <-results:
			require.False(t, seen[seq], "sequence %d handed out twice", seq)
			seen[seq] = true
		}
	}
	for want := int64(1); want <= workers; want++ {
		require.True(t, seen[want], "missing sequence %d", want)
	}
}

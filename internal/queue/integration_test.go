package queue_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/queue"
	testdb "github.com/ryo-aien/recruiting-screening-assistant/test/database"
)

func createTestCandidate(ctx context.Context, t *testing.T, client *ent.Client) *ent.Candidate {
	t.Helper()
	cand, err := client.Candidate.Create().
		SetID(uuid.NewString()).
		SetJobID("job-" + uuid.NewString()).
		SetFullName("Test Candidate").
		Save(ctx)
	require.NoError(t, err)
	return cand
}

// TestLeaseNextSkipsLeasedRow verifies that once an item has been
// leased (and is RUNNING), a second LeaseNext call finds no READY item.
// Racing lessees are covered by TestConcurrentLeaseNoDoubleClaim.
func TestLeaseNextSkipsLeasedRow(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	ctx := context.Background()
	driver := queue.NewDriver(dbClient.Ent)

	cand := createTestCandidate(ctx, t, dbClient.Ent)
	require.NoError(t, driver.Enqueue(ctx, uuid.NewString(), cand.ID, queue.StageTextExtract))

	item, err := driver.LeaseNext(ctx)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, cand.ID, item.CandidateID)

	_, err = driver.LeaseNext(ctx)
	assert.ErrorIs(t, err, queue.ErrNoItemsAvailable)
}

// TestConcurrentLeaseNoDoubleClaim spawns many goroutines racing to
// lease a fixed pool of queue items and asserts each item is claimed
// exactly once, regardless of how many goroutines race for it.
func TestConcurrentLeaseNoDoubleClaim(t *testing.T) {
	shared := testdb.NewSharedTestDB(t)
	ctx := context.Background()

	seedClient := shared.NewClient(t)
	driver := queue.NewDriver(seedClient.Ent)

	const itemCount = 20
	want := make(map[string]struct{}, itemCount)
	for i := 0; i < itemCount; i++ {
		cand := createTestCandidate(ctx, t, seedClient.Ent)
		id := uuid.NewString()
		require.NoError(t, driver.Enqueue(ctx, id, cand.ID, queue.StageTextExtract))
		want[id] = struct{}{}
	}

	const lessees = 8
	var (
		mu    sync.Mutex
		seen  = make(map[string]int)
		wg    sync.WaitGroup
		errCh = make(chan error, lessees*itemCount)
	)

	for i := 0; i < lessees; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := shared.NewClient(t)
			d := queue.NewDriver(client.Ent)
			for {
				item, err := d.LeaseNext(ctx)
				if err == queue.ErrNoItemsAvailable {
					return
				}
				if err != nil {
					errCh <- fmt.Errorf("lessee %d: %w", n, err)
					return
				}
				mu.Lock()
				seen[item.ID]++
				mu.Unlock()
			}
		}(i)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for lessees to drain the queue")
	}
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	assert.Len(t, seen, itemCount, "every item should have been claimed exactly once")
	for id, count := range seen {
		assert.Equal(t, 1, count, "item %s claimed %d times", id, count)
		_, ok := want[id]
		assert.True(t, ok, "claimed item %s was not in the seeded set", id)
	}
}

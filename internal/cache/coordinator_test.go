package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetch(data any) (FetchFunc, *atomic.Int32) {
	var calls atomic.Int32
	return func(ctx context.Context) (any, error) {
		calls.Add(1)
		return data, nil
	}, &calls
}

func TestCoordinator_ReadCachesSuccess(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	key := CollectionKey("books")
	fetch, calls := countingFetch("payload")

	entry, err := c.Read(ctx, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, entry.Status)
	assert.Equal(t, "payload", entry.Data)
	assert.False(t, entry.FetchedAt.IsZero())

	// A fresh success entry is served without re-fetching.
	entry, err = c.Read(ctx, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", entry.Data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCoordinator_SingleFlight(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	key := CollectionKey("books")

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		close(started)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]Entry, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.Read(ctx, key, fetch)
	}()

	<-started
	assert.Equal(t, StatusLoading, c.Peek(key).Status)

	wg.Add(1)
	go func() {
		defer wg.Done()
		// Joins the in-flight fetch; its own fetch func must never run.
		results[1], _ = c.Read(ctx, key, func(ctx context.Context) (any, error) {
			calls.Add(1)
			return "second", nil
		})
	}()

	// Give the second reader time to reach the coordinator before releasing.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent reads must share one fetch")
	assert.Equal(t, "shared", results[0].Data)
	assert.Equal(t, "shared", results[1].Data)
}

func TestCoordinator_InvalidateForcesRefetch(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	key := CollectionKey("books")
	fetch, calls := countingFetch("payload")

	_, err := c.Read(ctx, key, fetch)
	require.NoError(t, err)

	c.Invalidate(key)
	entry := c.Peek(key)
	assert.Equal(t, StatusIdle, entry.Status)
	assert.Nil(t, entry.Data, "invalidation discards cached data")

	_, err = c.Read(ctx, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "read after invalidate must re-fetch")
}

func TestCoordinator_ErrorStoredAndRetriedOnNextRead(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	key := CollectionKey("books")
	fetchErr := errors.New("backend down")

	var calls int
	fetch := func(ctx context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, fetchErr
		}
		return "recovered", nil
	}

	entry, err := c.Read(ctx, key, fetch)
	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, StatusError, entry.Status)
	assert.ErrorIs(t, entry.Err, fetchErr)

	// The entry stays in error state until the next explicit read, which
	// issues a new fetch rather than serving the failure.
	assert.Equal(t, StatusError, c.Peek(key).Status)

	entry, err = c.Read(ctx, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", entry.Data)
	assert.Equal(t, 2, calls)
}

func TestCoordinator_InvalidateRecordCoversBothKeys(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	collection := CollectionKey("books")
	record := RecordKey("books", "2")

	listFetch, listCalls := countingFetch([]string{"a", "b"})
	getFetch, getCalls := countingFetch("a")

	_, err := c.Read(ctx, collection, listFetch)
	require.NoError(t, err)
	_, err = c.Read(ctx, record, getFetch)
	require.NoError(t, err)

	c.InvalidateRecord("books", "2")
	assert.Equal(t, StatusIdle, c.Peek(collection).Status)
	assert.Equal(t, StatusIdle, c.Peek(record).Status)

	_, err = c.Read(ctx, collection, listFetch)
	require.NoError(t, err)
	_, err = c.Read(ctx, record, getFetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), listCalls.Load())
	assert.Equal(t, int32(2), getCalls.Load())
}

func TestCoordinator_LateResultAfterInvalidateIsDropped(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	key := CollectionKey("books")

	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "stale", nil
	}

	done := make(chan Entry)
	go func() {
		entry, _ := c.Read(ctx, key, fetch)
		done <- entry
	}()

	<-started
	c.Invalidate(key)
	close(release)

	// The reader that issued the fetch still observes its outcome.
	entry := <-done
	assert.Equal(t, StatusSuccess, entry.Status)
	assert.Equal(t, "stale", entry.Data)

	// But the table ignores the late result; the key stays invalidated.
	assert.Equal(t, StatusIdle, c.Peek(key).Status)
}

func TestCoordinator_PeekDoesNotFetch(t *testing.T) {
	c := New(nil)
	key := RecordKey("users", "1")
	assert.Equal(t, StatusIdle, c.Peek(key).Status)
	assert.Nil(t, c.Peek(key).Data)
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "books", CollectionKey("books").String())
	assert.Equal(t, "books/7", RecordKey("books", "7").String())
}

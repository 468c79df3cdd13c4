package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSnapshots is an in-memory stand-in for the Redis snapshot store.
type fakeSnapshots struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	loadErr error
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{data: make(map[string][]byte)}
}

func (f *fakeSnapshots) LoadCartSnapshot(_ context.Context, sessionID string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	data, ok := f.data[sessionID]
	return data, ok, nil
}

func (f *fakeSnapshots) SaveCartSnapshot(_ context.Context, sessionID string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[sessionID] = data
	return nil
}

func (f *fakeSnapshots) DeleteCartSnapshot(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, sessionID)
	return nil
}

func TestServicePersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()

	svc := NewService(snapshots)
	require.NoError(t, svc.AddItem(ctx, "sess", testProduct("1", 1000), 2))
	require.NoError(t, svc.AddItem(ctx, "sess", testProduct("2", 500), 1))

	// A fresh service over the same store simulates a page reload.
	reloaded := NewService(snapshots)
	c := reloaded.Get(ctx, "sess")

	assert.Equal(t, 3, c.TotalItemCount())
	assert.Equal(t, int64(2500), c.TotalPrice())
	assert.Equal(t, svc.Get(ctx, "sess").Lines(), c.Lines())
}

func TestServiceMalformedSnapshotFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()
	snapshots.data["sess"] = []byte("corrupt{{{")

	svc := NewService(snapshots)
	c := svc.Get(ctx, "sess")

	assert.True(t, c.IsEmpty())
}

func TestServiceLoadErrorFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()
	snapshots.loadErr = errors.New("redis down")

	svc := NewService(snapshots)
	c := svc.Get(ctx, "sess")

	assert.True(t, c.IsEmpty())
}

func TestServiceSwallowsSaveFailures(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()
	snapshots.saveErr = errors.New("quota exceeded")

	svc := NewService(snapshots)

	// Mutations still apply to the in-memory cart.
	require.NoError(t, svc.AddItem(ctx, "sess", testProduct("1", 1000), 1))
	assert.Equal(t, 1, svc.Get(ctx, "sess").TotalItemCount())
}

func TestServiceClearPersistsEmptyCart(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()

	svc := NewService(snapshots)
	require.NoError(t, svc.AddItem(ctx, "sess", testProduct("1", 1000), 2))
	svc.Clear(ctx, "sess")

	reloaded := NewService(snapshots)
	assert.Equal(t, 0, reloaded.Get(ctx, "sess").TotalItemCount())
	assert.Equal(t, int64(0), reloaded.Get(ctx, "sess").TotalPrice())
}

func TestServiceGetIsSafeAgainstConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeSnapshots())
	require.NoError(t, svc.AddItem(ctx, "sess", testProduct("1", 1000), 1))

	// Parallel requests for the same session: reads of the returned copy must
	// not race mutations of the live cart.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(q int) {
			defer wg.Done()
			svc.SetQuantity(ctx, "sess", "1", q+1)
		}(i)
		go func() {
			defer wg.Done()
			c := svc.Get(ctx, "sess")
			_ = c.TotalPrice()
			_ = c.TotalItemCount()
			_ = c.Lines()
		}()
	}
	wg.Wait()
}

func TestServiceGetReturnsDetachedCopy(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeSnapshots())
	require.NoError(t, svc.AddItem(ctx, "sess", testProduct("1", 1000), 2))

	// Mutating the copy must not touch the session's cart.
	copied := svc.Get(ctx, "sess")
	copied.Clear()
	require.NoError(t, copied.AddItem(testProduct("2", 500), 9))

	assert.Equal(t, 2, svc.Get(ctx, "sess").TotalItemCount())
	assert.Equal(t, int64(2000), svc.Get(ctx, "sess").TotalPrice())
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeSnapshots())

	require.NoError(t, svc.AddItem(ctx, "a", testProduct("1", 1000), 1))
	require.NoError(t, svc.AddItem(ctx, "b", testProduct("1", 1000), 5))

	assert.Equal(t, 1, svc.Get(ctx, "a").TotalItemCount())
	assert.Equal(t, 5, svc.Get(ctx, "b").TotalItemCount())
}

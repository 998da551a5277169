package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbreport/internal/core/apperror"
	"sbreport/internal/domain/reports"
)

type countingLoader struct {
	mu    sync.Mutex
	items map[string]reports.ItemTracking
	loads map[string]int
}

func newCountingLoader() *countingLoader {
	return &countingLoader{
		items: map[string]reports.ItemTracking{
			"WIDGET-1": {ItemCode: "WIDGET-1", HasBatchNo: true},
			"PHONE":    {ItemCode: "PHONE", HasSerialNo: true},
		},
		loads: map[string]int{},
	}
}

func (l *countingLoader) GetItemTracking(ctx context.Context, itemCode string) (*reports.ItemTracking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads[itemCode]++
	it, ok := l.items[itemCode]
	if !ok {
		return nil, apperror.NewNotFound("item", itemCode)
	}
	return &it, nil
}

func (l *countingLoader) count(itemCode string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[itemCode]
}

func TestItemCache_LoadsOnceUntilInvalidated(t *testing.T) {
	loader := newCountingLoader()
	c := NewItemCache(loader, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		it, err := c.GetItemTracking(ctx, "WIDGET-1")
		require.NoError(t, err)
		assert.True(t, it.HasBatchNo)
	}
	assert.Equal(t, 1, loader.count("WIDGET-1"))

	c.handleNotification(ItemChangedChannel, "WIDGET-1")
	_, err := c.GetItemTracking(ctx, "WIDGET-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loader.count("WIDGET-1"))
}

func TestItemCache_EmptyPayloadClearsAll(t *testing.T) {
	c := NewItemCache(newCountingLoader(), nil)
	ctx := context.Background()

	_, _ = c.GetItemTracking(ctx, "WIDGET-1")
	_, _ = c.GetItemTracking(ctx, "PHONE")
	require.Equal(t, 2, c.Len())

	c.handleNotification(ItemChangedChannel, "  ")
	assert.Equal(t, 0, c.Len())
}

func TestItemCache_IgnoresOtherChannels(t *testing.T) {
	c := NewItemCache(newCountingLoader(), nil)
	_, _ = c.GetItemTracking(context.Background(), "PHONE")

	c.handleNotification("schema_changed", "PHONE")
	assert.Equal(t, 1, c.Len())
}

func TestItemCache_NotFoundIsNotCached(t *testing.T) {
	loader := newCountingLoader()
	c := NewItemCache(loader, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.GetItemTracking(ctx, "GHOST")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	}
	assert.Equal(t, 2, loader.count("GHOST"))
	assert.Equal(t, 0, c.Len())
}

func TestItemCache_ReturnsCopies(t *testing.T) {
	c := NewItemCache(newCountingLoader(), nil)
	ctx := context.Background()

	first, err := c.GetItemTracking(ctx, "PHONE")
	require.NoError(t, err)
	first.HasSerialNo = false

	second, err := c.GetItemTracking(ctx, "PHONE")
	require.NoError(t, err)
	assert.True(t, second.HasSerialNo)
}

func TestItemCache_StartStopWithoutPool(t *testing.T) {
	c := NewItemCache(newCountingLoader(), nil)
	c.Start(context.Background())
	c.Stop()
	assert.False(t, c.started)
}

func TestItemCache_ConcurrentAccess(t *testing.T) {
	c := NewItemCache(newCountingLoader(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.GetItemTracking(ctx, "WIDGET-1")
		}()
		go func() {
			defer wg.Done()
			c.Invalidate("WIDGET-1")
		}()
	}
	wg.Wait()
}

// changingLoader flips the item's flags and fires the invalidation while the
// first load is still in flight, like a NOTIFY racing a cache miss.
type changingLoader struct {
	cache *ItemCache
	loads int
}

func (l *changingLoader) GetItemTracking(_ context.Context, itemCode string) (*reports.ItemTracking, error) {
	l.loads++
	if l.loads == 1 {
		stale := reports.ItemTracking{ItemCode: itemCode, HasBatchNo: true}
		l.cache.handleNotification(ItemChangedChannel, itemCode)
		return &stale, nil
	}
	return &reports.ItemTracking{ItemCode: itemCode, HasSerialNo: true}, nil
}

func TestItemCache_InvalidationDuringLoadIsNotLost(t *testing.T) {
	loader := &changingLoader{}
	c := NewItemCache(loader, nil)
	loader.cache = c
	ctx := context.Background()

	first, err := c.GetItemTracking(ctx, "WIDGET-1")
	require.NoError(t, err)
	assert.True(t, first.HasBatchNo)
	assert.Equal(t, 0, c.Len(), "value loaded before the invalidation is not stored")

	second, err := c.GetItemTracking(ctx, "WIDGET-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loader.loads)
	assert.True(t, second.HasSerialNo)
	assert.False(t, second.HasBatchNo)

	_, err = c.GetItemTracking(ctx, "WIDGET-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loader.loads, "fresh value is cached")
}

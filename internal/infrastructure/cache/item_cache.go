// Package cache provides caching infrastructure with PostgreSQL LISTEN/NOTIFY
// invalidation.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sbreport/internal/domain/reports"
	"sbreport/pkg/logger"
)

// ItemChangedChannel is the NOTIFY channel carrying changed item codes.
// An empty payload invalidates every cached item.
const ItemChangedChannel = "item_changed"

var _ reports.ItemLookup = (*ItemCache)(nil)

// ItemCache keeps item tracking flags in memory in front of a loader.
// Entries live until a NOTIFY on ItemChangedChannel names them.
type ItemCache struct {
	loader reports.ItemLookup
	pool   *pgxpool.Pool

	mu    sync.RWMutex
	items map[string]reports.ItemTracking
	// generation changes on every Invalidate; a load that started under an
	// older generation is returned but not stored.
	generation uint64

	lifecycleMu sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	started     bool
}

// NewItemCache creates a cache over loader. pool is used for LISTEN; with a
// nil pool the cache never invalidates on its own.
func NewItemCache(loader reports.ItemLookup, pool *pgxpool.Pool) *ItemCache {
	return &ItemCache{
		loader: loader,
		pool:   pool,
		items:  make(map[string]reports.ItemTracking),
	}
}

// GetItemTracking returns cached flags, loading them on a miss.
// Loader errors, including NotFound, are returned and never cached.
func (c *ItemCache) GetItemTracking(ctx context.Context, itemCode string) (*reports.ItemTracking, error) {
	c.mu.RLock()
	it, ok := c.items[itemCode]
	gen := c.generation
	c.mu.RUnlock()
	if ok {
		return &it, nil
	}

	loaded, err := c.loader.GetItemTracking(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == gen {
		c.items[itemCode] = *loaded
	}
	c.mu.Unlock()

	out := *loaded
	return &out, nil
}

// Invalidate drops itemCode from the cache, or everything when itemCode is empty.
func (c *ItemCache) Invalidate(itemCode string) {
	itemCode = strings.TrimSpace(itemCode)

	c.mu.Lock()
	c.generation++
	if itemCode == "" {
		c.items = make(map[string]reports.ItemTracking)
	} else {
		delete(c.items, itemCode)
	}
	c.mu.Unlock()
}

// Len returns the number of cached items.
func (c *ItemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Start begins listening for invalidations. It is a no-op without a pool
// or when already started.
func (c *ItemCache) Start(ctx context.Context) {
	if c.pool == nil {
		return
	}

	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	if c.started {
		return
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.started = true

	c.wg.Add(1)
	go c.listenLoop()
	logger.Info(c.ctx, "item cache started", "channel", ItemChangedChannel)
}

// Stop stops the listener and waits for it to exit.
func (c *ItemCache) Stop() {
	c.lifecycleMu.Lock()
	if !c.started {
		c.lifecycleMu.Unlock()
		return
	}
	cancel := c.cancel
	c.started = false
	c.cancel = nil
	c.lifecycleMu.Unlock()

	cancel()
	c.wg.Wait()
	logger.Info(context.Background(), "item cache stopped")
}

func (c *ItemCache) listenLoop() {
	defer c.wg.Done()

	for c.ctx.Err() == nil {
		conn, err := c.pool.Acquire(c.ctx)
		if err != nil {
			logger.Error(c.ctx, "failed to acquire connection for LISTEN", "error", err)
			c.sleep(time.Second)
			continue
		}

		if _, err := conn.Exec(c.ctx, "LISTEN "+ItemChangedChannel); err != nil {
			logger.Error(c.ctx, "failed to LISTEN", "channel", ItemChangedChannel, "error", err)
			conn.Release()
			c.sleep(time.Second)
			continue
		}

		// Changes made while not listening were missed.
		c.Invalidate("")
		c.waitForNotifications(conn)
		conn.Release()
	}
}

func (c *ItemCache) waitForNotifications(conn *pgxpool.Conn) {
	for {
		notification, err := conn.Conn().WaitForNotification(c.ctx)
		if err != nil {
			if c.ctx.Err() == nil {
				logger.Warn(c.ctx, "LISTEN connection lost", "error", err)
			}
			return
		}

		logger.Debug(c.ctx, "received notification",
			"channel", notification.Channel,
			"payload", notification.Payload)
		c.handleNotification(notification.Channel, notification.Payload)
	}
}

func (c *ItemCache) handleNotification(channel, payload string) {
	if channel == ItemChangedChannel {
		c.Invalidate(payload)
	}
}

func (c *ItemCache) sleep(d time.Duration) {
	select {
	case <-c.ctx.Done():
	case <-time.After(d):
	}
}

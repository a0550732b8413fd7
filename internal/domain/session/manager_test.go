package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/store-pilot/internal/domain/catalog/catalogtest"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
	"github.com/your-org/store-pilot/internal/infrastructure/kv"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(catalogtest.Catalog(), WithLogger(quietLogger()))
	ctx := context.Background()

	a := m.Get(ctx, NewID())
	b := m.Get(ctx, NewID())
	a.Store.AddToCart(1)

	assert.Len(t, a.Store.Cart(), 1)
	assert.Empty(t, b.Store.Cart())
	assert.Same(t, a, m.Get(ctx, a.ID))
	assert.Equal(t, 2, m.Len())
}

func TestManager_StateIsScopedInKV(t *testing.T) {
	base := kv.NewMemory()
	m := NewManager(catalogtest.Catalog(), WithKV(base), WithLogger(quietLogger()))
	id := NewID()

	m.Get(context.Background(), id).Store.AddToCart(3)

	assert.Equal(t, []string{KeyPrefix(id) + "cart"}, base.Keys("session:"))
}

func TestManager_SweepAndRestore(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	m := NewManager(catalogtest.Catalog(),
		WithLogger(quietLogger()),
		WithIdleTimeout(10*time.Minute),
		WithClock(clock.Now),
	)
	ctx := context.Background()

	idle := m.Get(ctx, NewID())
	idle.Store.AddToCart(1)
	idle.Store.ApplyCoupon("save10", 10)

	clock.Advance(5 * time.Minute)
	active := m.Get(ctx, NewID())
	busy := m.Get(ctx, NewID())
	require.NoError(t, busy.Acquire())

	clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 2, m.Len())
	assert.Same(t, active, m.Get(ctx, active.ID))

	restored := m.Get(ctx, idle.ID)
	assert.NotSame(t, idle, restored)
	require.Len(t, restored.Store.Cart(), 1)
	require.NotNil(t, restored.Store.Snapshot().Coupon)
	assert.Equal(t, "SAVE10", restored.Store.Snapshot().Coupon.Code)
}

func TestSession_Busy(t *testing.T) {
	m := NewManager(catalogtest.Catalog(), WithLogger(quietLogger()))
	s := m.Get(context.Background(), NewID())

	require.NoError(t, s.Acquire())
	assert.True(t, s.Busy())
	assert.ErrorIs(t, s.Acquire(), ErrBusy)

	s.Release()
	assert.False(t, s.Busy())
	assert.NoError(t, s.Acquire())
}

func TestSession_AcquireIsExclusive(t *testing.T) {
	m := NewManager(catalogtest.Catalog(), WithLogger(quietLogger()))
	s := m.Get(context.Background(), NewID())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Acquire() == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestManager_SeedMakesSessionsRepeatable(t *testing.T) {
	m := NewManager(catalogtest.Catalog(), WithLogger(quietLogger()), WithSeed(7))
	ctx := context.Background()

	first := m.Get(ctx, NewID()).Store.NegotiateDiscount("it's my birthday", intPtr(1))
	second := m.Get(ctx, NewID()).Store.NegotiateDiscount("it's my birthday", intPtr(1))

	require.True(t, first.Approved)
	assert.Equal(t, first.CouponCode, second.CouponCode)
}

func TestManager_RecorderReceivesSessionID(t *testing.T) {
	recorder := &negotiation.MemoryRecorder{}
	m := NewManager(catalogtest.Catalog(), WithLogger(quietLogger()), WithRecorder(recorder))
	id := NewID()

	m.Get(context.Background(), id).Store.NegotiateDiscount("student discount please", intPtr(2))

	records := recorder.Records()
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].SessionID)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID("not-a-session"))
	assert.False(t, ValidID(""))
}

func intPtr(v int) *int { return &v }

package kv

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "cart", []byte(`[{"productId":1,"quantity":2}]`)))
	value, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":1,"quantity":2}]`, string(value))

	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))
	value, err = s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))

	require.NoError(t, s.Remove(ctx, "cart"))
	_, err = s.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Remove(ctx, "never-set"))
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[0] = 'y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a := WithPrefix(base, "session:a:")
	b := WithPrefix(base, "session:b:")

	exerciseStore(t, a)

	require.NoError(t, a.Set(ctx, "coupon", []byte("A")))
	require.NoError(t, b.Set(ctx, "coupon", []byte("B")))

	got, err := a.Get(ctx, "coupon")
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
	assert.Equal(t, []string{"session:a:coupon", "session:b:coupon"}, base.Keys("session:"))
}

// Runs against a real server when REDIS_TEST_ADDR is set, e.g. localhost:6379.
func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	store := NewRedis(client, "storepilot:test:"+time.Now().Format("150405.000")+":", time.Minute)
	exerciseStore(t, store)
}

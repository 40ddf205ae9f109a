package metadata

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis points at a port that was just released, so every
// command fails fast with a connection error.
func unreachableRedis(t *testing.T) *RedisRepository {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	r := newRedisRepository(rdb, "")
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// liveRedis runs an in-process Redis server for the duration of the test.
func liveRedis(t *testing.T, prefix string) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedisRepository(RedisConfig{Addr: mr.Addr(), Prefix: prefix})
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedis_SetThenGet(t *testing.T) {
	r, mr := liveRedis(t, "")
	ctx := context.Background()

	require.NoError(t, r.Ping(ctx))
	require.NoError(t, r.Set(ctx, "ishara_user", []byte(`{"id":"1"}`)))

	v, err := r.Get(ctx, "ishara_user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), v)

	raw, err := mr.Get("ishara:metadata:ishara_user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, raw)
}

func TestRedis_GetMissing_ReturnsNilNil(t *testing.T) {
	r, _ := liveRedis(t, "")

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRedis_SetOverwritesWholeValue(t *testing.T) {
	r, _ := liveRedis(t, "")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("a much longer old value")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestRedis_DeleteIsIdempotent(t *testing.T) {
	r, mr := liveRedis(t, "")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.False(t, mr.Exists("ishara:metadata:x"))
}

func TestRedis_PrefixesIsolateRepositories(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	a := NewRedisRepository(RedisConfig{Addr: mr.Addr(), Prefix: "kiosk1:"})
	b := NewRedisRepository(RedisConfig{Addr: mr.Addr(), Prefix: "kiosk2:"})
	t.Cleanup(func() { _ = a.Close(); _ = b.Close() })

	require.NoError(t, a.Set(ctx, "k", []byte("one")))

	v, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.True(t, mr.Exists("kiosk1:k"))
}

func TestRedis_DefaultPrefix(t *testing.T) {
	r := NewRedisRepository(RedisConfig{Addr: "127.0.0.1:6379"})
	t.Cleanup(func() { _ = r.Close() })

	require.Equal(t, "ishara:metadata:ishara_user", r.key("ishara_user"))
}

func TestRedis_CustomPrefix(t *testing.T) {
	r := NewRedisRepository(RedisConfig{Addr: "127.0.0.1:6379", Prefix: "kiosk7:"})
	t.Cleanup(func() { _ = r.Close() })

	require.Equal(t, "kiosk7:ishara_user", r.key("ishara_user"))
}

func TestRedis_ErrorsAreWrapped(t *testing.T) {
	r := unreachableRedis(t)
	ctx := context.Background()

	require.Error(t, r.Ping(ctx))

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata[k]")
}

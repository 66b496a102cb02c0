package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV, key string) {
	t.Helper()
	ctx := context.Background()

	v, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, kv.Set(ctx, key, []byte(`[1,2,3]`)))
	v, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(v))

	require.NoError(t, kv.Set(ctx, key, []byte(`{"a":true}`)))
	v, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":true}`, string(v))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV(), "memory-test")
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	buf := []byte(`"x"`)
	require.NoError(t, kv.Set(ctx, "k", buf))
	buf[1] = 'y'

	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(v))
}

func TestRedisKV(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	kv, err := NewRedisKV(context.Background(), url, "cupid-test:")
	require.NoError(t, err)
	defer kv.Close()

	key := "kv-" + t.Name()
	defer kv.rdb.Del(context.Background(), kv.prefix+key)
	exerciseKV(t, kv, key)
}

func TestPostgresKV(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	kv, err := NewPostgresKV(ctx, pool)
	require.NoError(t, err)

	key := "kv-" + t.Name()
	defer pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	exerciseKV(t, kv, key)
}

package tokenstore_test

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/internal/errors"
	"github.com/jrsteele09/go-oauth-tokens/internal/utils"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/tokenstore"
	faketokenrepo "github.com/jrsteele09/go-oauth-tokens/tokenstore/repofake"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// memRedis implements tokenstore.RedisClient over a map.
type memRedis struct {
	data map[string]string
	lock sync.Mutex
}

func newMemRedis() *memRedis {
	return &memRedis{data: make(map[string]string)}
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	m.lock.Lock()
	defer m.lock.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.lock.Lock()
	defer m.lock.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *memRedis) Keys(_ context.Context, pattern string) *redis.StringSliceCmd {
	m.lock.Lock()
	defer m.lock.Unlock()
	var keys []string
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}

func repos(t *testing.T) map[string]tokenstore.Repo {
	return map[string]tokenstore.Repo{
		"file":  tokenstore.NewFileRepo(filepath.Join(t.TempDir(), "tokens")),
		"redis": tokenstore.NewRedisRepo(newMemRedis()),
		"fake":  faketokenrepo.NewFakeTokenRepo(),
	}
}

func TestRepo(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			keys, err := repo.List(ctx)
			require.NoError(t, err)
			require.Empty(t, keys)

			_, err = repo.Load(ctx, "google.alice")
			require.True(t, errors.Is(err, errors.ErrNotFound))

			require.NoError(t, repo.Save(ctx, "google.alice", []byte(`{"v":1}`)))
			require.NoError(t, repo.Save(ctx, "github.bob", []byte(`{"v":2}`)))
			require.NoError(t, repo.Save(ctx, "google.alice", []byte(`{"v":3}`)))

			data, err := repo.Load(ctx, "google.alice")
			require.NoError(t, err)
			require.JSONEq(t, `{"v":3}`, string(data))

			keys, err = repo.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"github.bob", "google.alice"}, keys)

			require.NoError(t, repo.Delete(ctx, "github.bob"))
			err = repo.Delete(ctx, "github.bob")
			require.True(t, errors.Is(err, errors.ErrNotFound))

			err = repo.Save(ctx, "../escape", []byte(`{}`))
			require.True(t, errors.Is(err, errors.ErrInvalidKey))
		})
	}
}

func TestFileRepo_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tokens")
	repo := tokenstore.NewFileRepo(dir)
	require.NoError(t, repo.Save(context.Background(), "imgur.carol", []byte(`{}`)))

	info, err := os.Stat(filepath.Join(dir, "imgur.carol.json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	info, err = os.Stat(dir)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"google.alice", "a", "github_bob-2", "imgur.carol.work"} {
		require.NoError(t, tokenstore.ValidateKey(key), key)
	}
	for _, key := range []string{"", ".hidden", "a/b", "..", "a b", "a:b"} {
		require.True(t, errors.Is(tokenstore.ValidateKey(key), errors.ErrInvalidKey), key)
	}
	require.Equal(t, "google.alice", tokenstore.Key("google", "alice"))
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	repo := faketokenrepo.NewFakeTokenRepo()

	expiresAt := time.Date(2024, time.March, 1, 13, 0, 0, 0, time.UTC)
	lifetime, err := token.NewExpiring(expiresAt, "1//refresh")
	require.NoError(t, err)
	want, err := token.NewBearer("ya29.aaaa", utils.Ptr("email"), lifetime, nil)
	require.NoError(t, err)

	require.NoError(t, tokenstore.Put(ctx, repo, "google.alice", want))

	got, err := tokenstore.Get[token.Expiring](ctx, repo, "google.alice")
	require.NoError(t, err)
	require.Equal(t, want, got)

	t.Run("wrong lifetime", func(t *testing.T) {
		_, err := tokenstore.Get[token.Static](ctx, repo, "google.alice")
		var pe *token.ParseError
		require.ErrorAs(t, err, &pe)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := tokenstore.Get[token.Expiring](ctx, repo, "google.nobody")
		require.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

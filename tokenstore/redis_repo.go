package tokenstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/internal/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisPrefix = "oauthtoken:"

// RedisClient is the subset of *redis.Client used by RedisRepo.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
}

var _ Repo = (*RedisRepo)(nil)

// RedisRepo stores tokens as Redis strings under the "oauthtoken:" prefix.
// Values never expire: a refresh token outlives the access token it came with.
type RedisRepo struct {
	client RedisClient
}

func NewRedisRepo(client RedisClient) *RedisRepo {
	return &RedisRepo{client: client}
}

// NewRedisRepoFromURL connects using a redis:// URL.
func NewRedisRepoFromURL(url string) (*RedisRepo, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing redis url")
	}
	return NewRedisRepo(redis.NewClient(opts)), nil
}

func (r *RedisRepo) Save(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisPrefix+key, data, 0).Err(); err != nil {
		return errors.Wrapf(err, "RedisRepo.Save %q", key)
	}
	log.Debug().Str("key", key).Msg("token saved")
	return nil
}

func (r *RedisRepo) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(errors.ErrNotFound, "RedisRepo.Load %q", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "RedisRepo.Load %q", key)
	}
	return data, nil
}

func (r *RedisRepo) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	n, err := r.client.Del(ctx, redisPrefix+key).Result()
	if err != nil {
		return errors.Wrapf(err, "RedisRepo.Delete %q", key)
	}
	if n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "RedisRepo.Delete %q", key)
	}
	log.Debug().Str("key", key).Msg("token deleted")
	return nil
}

func (r *RedisRepo) List(ctx context.Context) ([]string, error) {
	names, err := r.client.Keys(ctx, redisPrefix+"*").Result()
	if err != nil {
		return nil, errors.Wrapf(err, "RedisRepo.List")
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, strings.TrimPrefix(name, redisPrefix))
	}
	sort.Strings(keys)
	return keys, nil
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/rueidis"
)

type RedisOptionCache struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisOptionCache(client rueidis.Client, prefix string, ttl time.Duration) *RedisOptionCache {
	return &RedisOptionCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisOptionCache) generationKey() string {
	return r.prefix + ":filter-options:generation"
}

func (r *RedisOptionCache) generation(ctx context.Context) (int64, error) {
	cmd := r.client.B().Get().Key(r.generationKey()).Build()
	gen, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "read cache generation")
	}
	return gen, nil
}

func (r *RedisOptionCache) entryKey(gen int64, key string) string {
	return r.prefix + ":filter-options:" + formatInt(gen) + ":" + key
}

func (r *RedisOptionCache) Get(ctx context.Context, key string) ([]string, int64, bool, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	cmd := r.client.B().Get().Key(r.entryKey(gen, key)).Build()
	raw, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, gen, false, nil
		}
		return nil, gen, false, errors.Wrap(err, "read cached options")
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, gen, false, errors.Wrap(err, "decode cached options")
	}
	return values, gen, true, nil
}

// Set writes under gen, the generation the caller read with. After an
// Invalidate that key belongs to a retired generation and is never read.
func (r *RedisOptionCache) Set(ctx context.Context, gen int64, key string, values []string) error {
	if r.ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return errors.WithStack(err)
	}

	cmd := r.client.B().Set().Key(r.entryKey(gen, key)).Value(string(raw)).ExSeconds(ttlSeconds(r.ttl)).Build()
	return errors.Wrap(r.client.Do(ctx, cmd).Error(), "write cached options")
}

func (r *RedisOptionCache) Invalidate(ctx context.Context) error {
	cmd := r.client.B().Incr().Key(r.generationKey()).Build()
	return errors.Wrap(r.client.Do(ctx, cmd).Error(), "bump cache generation")
}

func ttlSeconds(ttl time.Duration) int64 {
	if s := int64(ttl / time.Second); s > 0 {
		return s
	}
	return 1
}

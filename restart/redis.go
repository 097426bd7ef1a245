package restart

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// raiseScript sets KEYS[1] to ARGV[1] when larger and returns {mark, raised}.
const raiseScript = `
local cur = tonumber(redis.call("get", KEYS[1]) or "0")
local v = tonumber(ARGV[1])
if v > cur then
	redis.call("set", KEYS[1], ARGV[1])
	return {v, 1}
end
return {cur, 0}
`

// RedisHighWater shares the mark between processes through one Redis key.
type RedisHighWater struct {
	client *backend.Client
	prefix string
	key    string
	script *backend.Script
}

// RedisOption configures a RedisHighWater.
type RedisOption func(*RedisHighWater)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *RedisHighWater) {
		r.prefix = prefix
	}
}

// WithKey names the mark, e.g. after the input file and mode, so unrelated
// runs do not share a mark.
func WithKey(key string) RedisOption {
	return func(r *RedisHighWater) {
		if key != "" {
			r.key = key
		}
	}
}

// NewRedisHighWater dials address and returns a store.
func NewRedisHighWater(address, password string, db int, opts ...RedisOption) *RedisHighWater {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	return NewRedisHighWaterFromClient(rdb, opts...)
}

// NewRedisHighWaterFromClient wraps an existing client.
func NewRedisHighWaterFromClient(client *backend.Client, opts ...RedisOption) *RedisHighWater {
	r := &RedisHighWater{
		client: client,
		prefix: "valveflow:highwater:",
		key:    "default",
		script: backend.NewScript(raiseScript),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Key returns the full Redis key of the mark.
func (r *RedisHighWater) Key() string { return r.prefix + r.key }

// Offer implements HighWater atomically on the server.
func (r *RedisHighWater) Offer(ctx context.Context, flow int) (int, bool, error) {
	vals, err := r.script.Run(ctx, r.client, []string{r.Key()}, flow).Int64Slice()
	if err != nil {
		return 0, false, fmt.Errorf("restart: redis offer: %w", err)
	}
	if len(vals) != 2 {
		return 0, false, fmt.Errorf("restart: redis offer: unexpected reply %v", vals)
	}

	return int(vals[0]), vals[1] == 1, nil
}

// Load implements HighWater. A missing key reads as 0.
func (r *RedisHighWater) Load(ctx context.Context) (int, error) {
	v, err := r.client.Get(ctx, r.Key()).Int()
	if err == backend.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("restart: redis load: %w", err)
	}

	return v, nil
}

// Close releases the client.
func (r *RedisHighWater) Close() error { return r.client.Close() }

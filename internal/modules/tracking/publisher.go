// README: Redis publisher fanning tick batches out to other consumers.
package tracking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tickChannel = "tollsim:ticks"
	lastTickKey = "tollsim:last_tick"
	lastTickTTL = 24 * time.Hour
)

type RedisPublisher struct {
	redis *redis.Client
}

func NewRedisPublisher(redis *redis.Client) *RedisPublisher {
	return &RedisPublisher{redis: redis}
}

// Notify publishes the batch and keeps a copy of the latest one for
// consumers that connect between ticks.
func (p *RedisPublisher) Notify(ctx context.Context, b Batch) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}
	pipe := p.redis.Pipeline()
	pipe.Publish(ctx, tickChannel, payload)
	pipe.Set(ctx, lastTickKey, payload, lastTickTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// LastBatch returns the most recently published batch, if any.
func (p *RedisPublisher) LastBatch(ctx context.Context) (Batch, bool, error) {
	val, err := p.redis.Get(ctx, lastTickKey).Bytes()
	if err == redis.Nil {
		return Batch{}, false, nil
	}
	if err != nil {
		return Batch{}, false, err
	}
	var b Batch
	if err := json.Unmarshal(val, &b); err != nil {
		return Batch{}, false, err
	}
	return b, true, nil
}

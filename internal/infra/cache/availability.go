package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/domain/slot"
)

var errStale = errors.New("availability version moved")

// RedisAvailability caches availability lists for a short TTL. Every error is
// logged and treated as a miss; the booking transaction re-checks anyway.
type RedisAvailability struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewRedisAvailability(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisAvailability {
	return &RedisAvailability{client: client, ttl: ttl, log: log}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// versionTTL outlives any in-flight read by a wide margin.
const versionTTL = 24 * time.Hour

func Key(doctorID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", doctorID, date)
}

// VersionKey holds the invalidation counter for Key(doctorID, date).
func VersionKey(doctorID uint, date string) string {
	return fmt.Sprintf("availability:version:%d:%s", doctorID, date)
}

func (c *RedisAvailability) Get(ctx context.Context, doctorID uint, date string) (slot.Labels, bool) {
	raw, err := c.client.Get(ctx, Key(doctorID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Uint("doctor_id", doctorID).Str("date", date).Msg("availability cache read failed")
		}
		return nil, false
	}

	var labels slot.Labels
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, false
	}
	return labels, true
}

// Version returns -1 when redis cannot be read, which makes the following
// Set a no-op.
func (c *RedisAvailability) Version(ctx context.Context, doctorID uint, date string) int64 {
	v, err := c.client.Get(ctx, VersionKey(doctorID, date)).Int64()
	switch {
	case err == redis.Nil:
		return 0
	case err != nil:
		c.log.Warn().Err(err).Uint("doctor_id", doctorID).Str("date", date).Msg("availability version read failed")
		return -1
	}
	return v
}

// Set writes labels only while the version key still equals version. The
// WATCH makes an Invalidate that lands between the check and the write
// abort the transaction.
func (c *RedisAvailability) Set(ctx context.Context, doctorID uint, date string, version int64, labels slot.Labels) {
	raw, err := json.Marshal(labels)
	if err != nil {
		return
	}

	vkey := VersionKey(doctorID, date)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != version {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, Key(doctorID, date), raw, c.ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil, errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
	default:
		c.log.Warn().Err(err).Uint("doctor_id", doctorID).Str("date", date).Msg("availability cache write failed")
	}
}

func (c *RedisAvailability) Invalidate(ctx context.Context, doctorID uint, date string) {
	vkey := VersionKey(doctorID, date)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, vkey)
		p.Expire(ctx, vkey, versionTTL)
		p.Del(ctx, Key(doctorID, date))
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Uint("doctor_id", doctorID).Str("date", date).Msg("availability cache invalidate failed")
	}
}

// Noop is used when REDIS_URL is not configured.
type Noop struct{}

func (Noop) Get(context.Context, uint, string) (slot.Labels, bool) { return nil, false }
func (Noop) Version(context.Context, uint, string) int64 { return 0 }
func (Noop) Set(context.Context, uint, string, int64, slot.Labels) {}
func (Noop) Invalidate(context.Context, uint, string) {}

var (
	_ domain.AvailabilityCache = (*RedisAvailability)(nil)
	_ domain.AvailabilityCache = Noop{}
)

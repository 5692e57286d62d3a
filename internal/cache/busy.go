package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/availability"
)

// NoGeneration is returned by Get when the day's generation could not be
// read. Set ignores it.
const NoGeneration int64 = -1

// BusyCache keeps the busy intervals (appointments and time blocks) of a
// professional for one calendar day. Redis failures degrade to cache
// misses; they never fail a request.
//
// Every day has a generation counter and entries are stored under it.
// Invalidate bumps the counter, so a reader that loaded the store before
// a write can still Set, but under a generation nobody reads anymore.
type BusyCache struct {
	client *redis.Client
	ttl    time.Duration
	genTTL time.Duration
	log    *logrus.Logger
}

func NewBusyCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *BusyCache {
	genTTL := 2 * ttl
	if genTTL < 24*time.Hour {
		genTTL = 24 * time.Hour
	}
	return &BusyCache{client: client, ttl: ttl, genTTL: genTTL, log: log}
}

func dayKey(professionalID uint, day time.Time) string {
	return fmt.Sprintf("%d:%s", professionalID, day.Format("2006-01-02"))
}

func genKey(professionalID uint, day time.Time) string {
	return "busygen:" + dayKey(professionalID, day)
}

func busyKey(professionalID uint, day time.Time, gen int64) string {
	return fmt.Sprintf("busy:%s:%d", dayKey(professionalID, day), gen)
}

// Get returns the cached intervals and the generation they were looked
// up under. On a miss the generation is still returned and must be
// passed to Set together with the freshly loaded intervals.
func (c *BusyCache) Get(
	ctx context.Context,
	professionalID uint,
	day time.Time,
) ([]availability.Interval, int64, bool) {
	if c == nil || c.client == nil {
		return nil, NoGeneration, false
	}

	gen, err := c.client.Get(ctx, genKey(professionalID, day)).Int64()
	switch {
	case err == redis.Nil:
		gen = 0
	case err != nil:
		c.log.WithError(err).Warn("busy cache read failed")
		return nil, NoGeneration, false
	}

	raw, err := c.client.Get(ctx, busyKey(professionalID, day, gen)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("busy cache read failed")
			return nil, NoGeneration, false
		}
		return nil, gen, false
	}

	var intervals []availability.Interval
	if err := json.Unmarshal(raw, &intervals); err != nil {
		c.log.WithError(err).Warn("busy cache entry corrupted")
		return nil, gen, false
	}
	return intervals, gen, true
}

func (c *BusyCache) Set(
	ctx context.Context,
	professionalID uint,
	day time.Time,
	gen int64,
	intervals []availability.Interval,
) {
	if c == nil || c.client == nil || gen < 0 {
		return
	}

	if intervals == nil {
		intervals = []availability.Interval{}
	}
	raw, err := json.Marshal(intervals)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, busyKey(professionalID, day, gen), raw, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("busy cache write failed")
	}
}

// Invalidate moves every day touched by [start, end] to a new generation.
func (c *BusyCache) Invalidate(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) {
	if c == nil || c.client == nil {
		return
	}

	var keys []string
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for !day.After(end) {
		keys = append(keys, genKey(professionalID, day))
		day = day.AddDate(0, 0, 1)
	}
	if len(keys) == 0 {
		keys = append(keys, genKey(professionalID, start))
	}

	_, err := c.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, k)
			p.Expire(ctx, k, c.genTTL)
		}
		return nil
	})
	if err != nil {
		c.log.WithError(err).
			WithField("professional_id", professionalID).
			Warn("busy cache invalidation failed")
	}
}

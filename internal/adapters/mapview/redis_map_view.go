package mapview

import (
	"context"
	"coordinate-converter-service/internal/domain"
	"coordinate-converter-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "mapview:"

// Optimistic-lock attempts before FlyTo gives up on a contended view.
const redisMaxRetries = 5

type redisRecord struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisMapView stores one JSON record per view with a sliding TTL.
type RedisMapView struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMapView(client *redis.Client, ttl time.Duration) *RedisMapView {
	return &RedisMapView{client: client, ttl: ttl}
}

func (r *RedisMapView) FlyTo(
	ctx context.Context,
	view string,
	c domain.Coordinate,
	minZoom int,
) (_ domain.MapState, err error) {
	defer obs.Time(ctx, "mapview.redis.FlyTo")(&err)

	if r.client == nil {
		return domain.MapState{}, errors.New("map view: redis client is nil")
	}
	if strings.TrimSpace(view) == "" {
		return domain.MapState{}, errors.New("fly to: view id must not be empty")
	}

	key := redisKeyPrefix + view

	var next domain.MapState
	txf := func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, key)
		if err != nil {
			return err
		}
		next = current.FlyTo(c, minZoom)

		b, err := json.Marshal(redisRecord{Lat: next.Center.Lat, Lon: next.Center.Lon, Zoom: next.Zoom})
		if err != nil {
			return fmt.Errorf("encode map view: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < redisMaxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return domain.MapState{}, fmt.Errorf("fly to view=%q: %w", view, err)
	}

	return domain.MapState{}, fmt.Errorf("fly to view=%q: too much contention after %d attempts", view, redisMaxRetries)
}

func (r *RedisMapView) Current(ctx context.Context, view string) (_ domain.MapState, err error) {
	defer obs.Time(ctx, "mapview.redis.Current")(&err)

	if r.client == nil {
		return domain.MapState{}, errors.New("map view: redis client is nil")
	}

	return r.load(ctx, r.client, redisKeyPrefix+view)
}

func (r *RedisMapView) Reset(ctx context.Context, view string) (err error) {
	defer obs.Time(ctx, "mapview.redis.Reset")(&err)

	if r.client == nil {
		return errors.New("map view: redis client is nil")
	}

	if err := r.client.Del(ctx, redisKeyPrefix+view).Err(); err != nil {
		return fmt.Errorf("reset map view=%q: %w", view, err)
	}
	return nil
}

func (r *RedisMapView) load(ctx context.Context, g redisGetter, key string) (domain.MapState, error) {
	b, err := g.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DefaultMapState(), nil
	}
	if err != nil {
		return domain.MapState{}, fmt.Errorf("get map view %q: %w", key, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.MapState{}, fmt.Errorf("get map view %q: decode: %w", key, err)
	}

	return stateFromRow(rec.Lat, rec.Lon, rec.Zoom), nil
}

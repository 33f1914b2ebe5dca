package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pearl-desk/internal/pkg/config"
	"pearl-desk/internal/usecase"

	"github.com/redis/go-redis/v9"
)

const availableRoomsKey = "cache:rooms:available"

// RoomCache keeps the currently-available room list in redis so the public
// availability page does not hit Postgres on every poll. Any write that can
// change room status invalidates it.
type RoomCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRoomCache(client *redis.Client, cfg config.RedisConfig) *RoomCache {
	return &RoomCache{
		client: client,
		ttl:    cfg.RoomsTTL,
	}
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// GetAvailable returns the cached list, or (nil, nil) on a miss.
func (c *RoomCache) GetAvailable(ctx context.Context) ([]*usecase.RoomView, error) {
	data, err := c.client.Get(ctx, availableRoomsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rooms []*usecase.RoomView
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RoomCache) SetAvailable(ctx context.Context, rooms []*usecase.RoomView) error {
	payload, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availableRoomsKey, payload, c.ttl).Err()
}

func (c *RoomCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, availableRoomsKey).Err()
}

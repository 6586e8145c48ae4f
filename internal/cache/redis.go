package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ncastro/riobook/config"
	"github.com/ncastro/riobook/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL: catalogTTL,
	}
}

func (c *RedisCache) GetOperators(ctx context.Context) ([]domain.Operator, error) {
	data, err := c.client.Get(ctx, operatorsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var operators []domain.Operator
	if err := json.Unmarshal(data, &operators); err != nil {
		return nil, err
	}
	return operators, nil
}

func (c *RedisCache) SetOperators(ctx context.Context, operators []domain.Operator) error {
	payload, err := json.Marshal(operators)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, operatorsKey(), payload, c.catalogTTL).Err()
}

func (c *RedisCache) GetTripSearch(ctx context.Context, key string) ([]domain.Trip, error) {
	data, err := c.client.Get(ctx, tripSearchKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (c *RedisCache) SetTripSearch(ctx context.Context, key string, trips []domain.Trip) error {
	payload, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tripSearchKey(key), payload, c.catalogTTL).Err()
}

// SearchKey builds a stable cache key for a trip search.
func SearchKey(origin, destination string, types []string, dayOfWeek string, minPrice, maxPrice *int) string {
	min, max := -1, -1
	if minPrice != nil {
		min = *minPrice
	}
	if maxPrice != nil {
		max = *maxPrice
	}
	return fmt.Sprintf("%s|%s|%s|%s|%d|%d", origin, destination, strings.Join(types, ","), dayOfWeek, min, max)
}

func operatorsKey() string {
	return "cache:operators"
}

func tripSearchKey(key string) string {
	return "cache:trips:" + key
}

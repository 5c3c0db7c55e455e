package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// CartStorage 购物车存储，每个用户一个 hash：field 商品ID -> 数量
type CartStorage struct {
	redis *redis.Client
}

func NewCartStorage(rds *redis.Client) *CartStorage {
	return &CartStorage{redis: rds}
}

func (c *CartStorage) key(userID uint64) string {
	return fmt.Sprintf("mall:cart:%d", userID)
}

// Incr 累加数量，返回累加后的值
func (c *CartStorage) Incr(ctx context.Context, userID, productID uint64, quantity int64) (int64, error) {
	return c.redis.HIncrBy(ctx, c.key(userID), strconv.FormatUint(productID, 10), quantity).Result()
}

// Set 覆盖数量
func (c *CartStorage) Set(ctx context.Context, userID, productID uint64, quantity int64) error {
	return c.redis.HSet(ctx, c.key(userID), strconv.FormatUint(productID, 10), quantity).Err()
}

func (c *CartStorage) Get(ctx context.Context, userID, productID uint64) (int64, error) {
	val, err := c.redis.HGet(ctx, c.key(userID), strconv.FormatUint(productID, 10)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (c *CartStorage) Remove(ctx context.Context, userID, productID uint64) error {
	return c.redis.HDel(ctx, c.key(userID), strconv.FormatUint(productID, 10)).Err()
}

func (c *CartStorage) Clear(ctx context.Context, userID uint64) error {
	return c.redis.Del(ctx, c.key(userID)).Err()
}

// All 取整车，商品ID -> 数量
func (c *CartStorage) All(ctx context.Context, userID uint64) (map[uint64]int64, error) {
	items, err := c.redis.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, err
	}

	result := make(map[uint64]int64, len(items))
	for field, val := range items {
		pid, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.ParseInt(val, 10, 64)
		if err != nil || qty <= 0 {
			continue
		}
		result[pid] = qty
	}
	return result, nil
}

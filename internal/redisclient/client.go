package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// confirmationTTL bounds how long a submitted order's confirmation stays
// available for handoff retries.
const confirmationTTL = 7 * 24 * time.Hour

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func orderKey(ref string) string {
	return fmt.Sprintf("order:%s", ref)
}

// LoadCartSnapshot returns the saved cart snapshot for a session, with found
// reporting whether one exists.
func (c *Client) LoadCartSnapshot(ctx context.Context, sessionID string) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	return data, true, nil
}

// SaveCartSnapshot writes the full cart state under the session's key.
// Carts persist indefinitely; writes are last-writer-wins.
func (c *Client) SaveCartSnapshot(ctx context.Context, sessionID string, data []byte) error {
	if err := c.rdb.Set(ctx, cartKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// DeleteCartSnapshot removes the session's saved cart.
func (c *Client) DeleteCartSnapshot(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, cartKey(sessionID)).Err()
}

// SaveOrderConfirmation retains a submitted order's confirmation so the
// messaging handoff link can be re-fetched.
func (c *Client) SaveOrderConfirmation(ctx context.Context, ref string, data []byte) error {
	if err := c.rdb.Set(ctx, orderKey(ref), data, confirmationTTL).Err(); err != nil {
		return fmt.Errorf("failed to save order confirmation: %w", err)
	}
	return nil
}

// LoadOrderConfirmation returns a retained order confirmation by reference.
func (c *Client) LoadOrderConfirmation(ctx context.Context, ref string) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, orderKey(ref)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load order confirmation: %w", err)
	}
	return data, true, nil
}

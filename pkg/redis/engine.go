package redis

import (
	"github.com/redis/go-redis/v9"
)

// NewClient returns a client for addr; it does not dial until first use.
func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		Protocol: 2,
	})
}

package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories rely on.
// Both standalone and cluster clients satisfy it.
type Client interface {
	redis.UniversalClient
}

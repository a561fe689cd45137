package realtime

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedis creates the Redis client shared by the notification bridge and
// the task queue.
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	logrus.WithField("addr", addr).Info("redis client created")
	return rdb
}

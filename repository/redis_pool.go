package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultIdleTimeout    = 4 * time.Minute
	defaultMaxIdle        = 3
)

type RedisPoolOption struct {
	f func(*redis.Pool)
}

func RedisPoolDial(f func() (redis.Conn, error)) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.Dial = f
	}}
}

func RedisPoolIdleTimeout(timeout time.Duration) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.IdleTimeout = timeout
	}}
}

func RedisPoolMaxActive(i int) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.MaxActive = i
	}}
}

func RedisPoolMaxConnLifetime(lifetime time.Duration) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.MaxConnLifetime = lifetime
	}}
}

func RedisPoolMaxIdle(i int) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.MaxIdle = i
	}}
}

func RedisPoolTestOnBorrow(f func(c redis.Conn, t time.Time) error) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.TestOnBorrow = f
	}}
}

func RedisPoolWait(b bool) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.Wait = b
	}}
}

// NewRedisPool returns a pool of connections to a local Redis server
// unless RedisPoolDial says otherwise
func NewRedisPool(options ...RedisPoolOption) *redis.Pool {
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", ":6379")
		},
	}

	for _, option := range options {
		option.f(pool)
	}

	return pool
}

// NewRedisPoolForHost returns a pool dialling host with a connect timeout,
// pinging connections that have been idle for more than a minute before
// handing them out. options are applied last
func NewRedisPoolForHost(host string, options ...RedisPoolOption) *redis.Pool {
	defaults := []RedisPoolOption{
		RedisPoolDial(func() (redis.Conn, error) {
			return redis.Dial("tcp", host, redis.DialConnectTimeout(defaultConnectTimeout))
		}),
		RedisPoolIdleTimeout(defaultIdleTimeout),
		RedisPoolMaxIdle(defaultMaxIdle),
		RedisPoolTestOnBorrow(func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		}),
	}

	return NewRedisPool(append(defaults, options...)...)
}

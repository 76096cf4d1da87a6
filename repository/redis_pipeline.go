package repository

import (
	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

// RedisPipeline sends commands over a single pooled connection, flushing
// and reading replies every FlushAfter commands
type RedisPipeline struct {
	FlushAfter int
	Pool       *redis.Pool
}

// Execute runs cmds in order and returns one result per command. The
// error reports a broken connection or the first command Redis rejected
func (rp *RedisPipeline) Execute(cmds []RedisCommand) (results []RedisResult, err error) {
	results = make([]RedisResult, 0, len(cmds))

	if len(cmds) == 0 {
		return results, nil
	}

	// Get a Redis connection from the pool and defer the close
	conn := rp.Pool.Get()
	defer func() {
		if cErr := conn.Close(); cErr != nil && err == nil {
			err = errors.Wrap(cErr, "cannot close Redis connection")
		}
	}()

	flushAfter := rp.FlushAfter
	if flushAfter <= 0 {
		flushAfter = len(cmds)
	}

	pending := 0

	for _, cmd := range cmds {
		if err := conn.Send(cmd.Name, cmd.Args...); err != nil {
			return results, errors.Wrapf(err, "cannot send %s to Redis", cmd.Name)
		}
		pending++

		if pending == flushAfter {
			if results, err = receiveRedisResults(conn, pending, results); err != nil {
				return results, err
			}
			pending = 0
		}
	}

	if pending > 0 {
		if results, err = receiveRedisResults(conn, pending, results); err != nil {
			return results, err
		}
	}

	for _, result := range results {
		if result.Err != nil {
			return results, errors.Wrap(result.Err, "error received in Redis response")
		}
	}

	return results, nil
}

// Flush the connection and receive the replies to n queued commands
func receiveRedisResults(conn redis.Conn, n int, results []RedisResult) ([]RedisResult, error) {
	if err := conn.Flush(); err != nil {
		return results, errors.Wrap(err, "cannot flush Redis connection")
	}

	for i := 0; i < n; i++ {
		var result RedisResult
		result.Value, result.Err = conn.Receive()

		// A reply error leaves the connection usable; anything else does not
		if _, ok := result.Err.(redis.Error); result.Err != nil && !ok {
			return results, errors.Wrap(result.Err, "cannot receive from Redis")
		}

		results = append(results, result)
	}

	return results, nil
}

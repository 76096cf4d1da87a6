package repository

import (
	"encoding/json"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

// StateKeyPrefix namespaces sensor states in a shared Redis database
const StateKeyPrefix = "uk-transport:"

func RedisStateKey(key string) string {
	return StateKeyPrefix + key
}

// RedisStateStore keeps the latest state of every sensor as a JSON string
type RedisStateStore struct {
	Logger   *dlog.Logger
	Pipeline *RedisPipeline
}

func NewRedisStateStore(logger *dlog.Logger, pool *redis.Pool) *RedisStateStore {
	return &RedisStateStore{
		Logger: logger,
		Pipeline: &RedisPipeline{
			FlushAfter: 100,
			Pool:       pool,
		},
	}
}

// SaveStates overwrites the stored state of each sensor in one pipeline
func (s *RedisStateStore) SaveStates(states []model.SensorState) error {
	s.Logger.Debugf("SaveStates: %d state(s)", len(states))

	cmds := make([]RedisCommand, 0, len(states))

	for _, state := range states {
		stateJSON, err := json.Marshal(state)
		if err != nil {
			return errors.Wrapf(err, "cannot marshal state for %s", state.Key)
		}

		cmds = append(cmds, RedisCommand{
			Name: "SET",
			Args: []interface{}{RedisStateKey(state.Key), stateJSON},
		})
	}

	if _, err := s.Pipeline.Execute(cmds); err != nil {
		return errors.Wrap(err, "cannot save sensor states")
	}

	return nil
}

// LoadState returns the stored state for key, or nil if there is none
func (s *RedisStateStore) LoadState(key string) (*model.SensorState, error) {
	s.Logger.Debugf("LoadState: %s", key)

	results, err := s.Pipeline.Execute([]RedisCommand{
		{Name: "GET", Args: []interface{}{RedisStateKey(key)}},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load state for %s", key)
	}

	stateJSON, err := redis.Bytes(results[0].Value, results[0].Err)
	if err == redis.ErrNil {
		return nil, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "cannot read state for %s", key)
	}

	state := model.SensorState{}
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal state for %s", key)
	}

	return &state, nil
}

package publisher

import (
	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/TfGMEnterprise/uk-transport-sensors/repository"
	"github.com/pkg/errors"
)

// RedisPublisher stores the latest state of each sensor for the presenter
type RedisPublisher struct {
	Logger *dlog.Logger
	Store  *repository.RedisStateStore
}

func (rp *RedisPublisher) Publish(states []model.SensorState) error {
	rp.Logger.Debug("RedisPublisher Publish")

	if err := rp.Store.SaveStates(states); err != nil {
		return errors.Wrap(err, "cannot publish to Redis")
	}

	return nil
}

package publisher

import (
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
)

// Publisher hands the states of every sensor to somewhere outside the
// poller after each scan. A failed publish never changes sensor state
type Publisher interface {
	Publish(states []model.SensorState) error
}

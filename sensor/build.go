package sensor

import (
	"github.com/TfGMEnterprise/uk-transport-sensors/config"
	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	transportapi_client "github.com/TfGMEnterprise/uk-transport-sensors/transportapi-client"
	"github.com/pkg/errors"
)

// FromConfig builds one sensor per configured bus and train entry, buses
// first, in configuration order
func FromConfig(logger *dlog.Logger, client transportapi_client.TransportAPIClientInterface, cfg *config.Config) ([]Sensor, error) {
	credentials := Credentials{
		AppID:   cfg.AppID,
		AppKey:  cfg.AppKey,
		BaseURL: cfg.BaseURL,
	}

	var sensors []Sensor

	for _, bus := range cfg.LiveBusTime {
		s, err := NewBusSensor(logger, client, credentials, bus.StopAtcocode, bus.Direction)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot create bus sensor for stop %s", bus.StopAtcocode)
		}
		sensors = append(sensors, s)
	}

	for _, train := range cfg.LiveTrainTime {
		sensors = append(sensors, NewTrainSensor(logger, client, credentials, train.StationCode, train.DestinationName))
	}

	return sensors, nil
}

package sensor

import (
	"fmt"
	"time"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	transportapi_client "github.com/TfGMEnterprise/uk-transport-sensors/transportapi-client"
)

// TrainSensor counts down to the next passenger train from a station to
// a destination
type TrainSensor struct {
	base
	StationCode     string
	DestinationName string
}

func NewTrainSensor(logger *dlog.Logger, client transportapi_client.TransportAPIClientInterface, credentials Credentials, stationCode string, destinationName string) *TrainSensor {
	state := model.NewSensorState(
		model.StateKey(model.Train, stationCode, destinationName),
		fmt.Sprintf("Next train to %s", destinationName),
		model.Train,
	)
	state.Attributes.Train = &model.TrainAttributes{
		StationCode:     stationCode,
		DestinationName: destinationName,
		NextTrains:      []model.TrainDeparture{},
	}

	return &TrainSensor{
		base: newBase(
			logger,
			client,
			credentials,
			fmt.Sprintf("train/station/%s/live.json", stationCode),
			map[string]string{
				"darwin":       "false",
				"destination":  destinationName,
				"train_status": "passenger",
			},
			state,
		),
		StationCode:     stationCode,
		DestinationName: destinationName,
	}
}

// Update fetches the live departures for the station. A query error
// reported by transportapi.com replaces the state with a marker but keeps
// the previous trains; a failed fetch keeps everything
func (s *TrainSensor) Update(now time.Time) {
	s.Logger.Debugf("Update %s", s.state.Key)

	live := model.TrainLive{}
	if !s.fetch(&live) {
		return
	}

	nextTrains, err := TransformTrainDepartures(&live)
	if err != nil {
		s.Logger.Printf("%s: %s", s.state.Name, err)
		s.state.SetQueryError()
		return
	}

	stationCode := live.StationCode
	if stationCode == "" {
		stationCode = s.StationCode
	}

	s.state.Attributes.Train = &model.TrainAttributes{
		StationCode:     stationCode,
		DestinationName: s.DestinationName,
		NextTrains:      nextTrains,
	}

	s.updateMinutes(now, trainScheduledTimes(nextTrains))
}

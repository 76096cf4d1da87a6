package sensor

import (
	"regexp"

	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/pkg/errors"
)

// ErrQueryError is returned when transportapi.com answered with an error
// instead of departures
var ErrQueryError = errors.New("transportapi.com rejected the query")

// FilterBusDepartures keeps the departures whose direction matches
// directionRe anywhere in the string, in response order
func FilterBusDepartures(live *model.BusLive, directionRe *regexp.Regexp) []model.BusDeparture {
	departures := []model.BusDeparture{}

	for _, route := range live.Departures {
		for _, departure := range route.Departures {
			if !directionRe.MatchString(departure.Direction) {
				continue
			}

			departures = append(departures, model.BusDeparture{
				Route:     route.Route,
				Direction: departure.Direction,
				Scheduled: departure.AimedDepartureTime,
				Estimated: departure.BestDepartureEstimate,
			})
		}
	}

	return departures
}

// TransformTrainDepartures maps departures.all as is; transportapi.com has
// already filtered it by destination and passenger status
func TransformTrainDepartures(live *model.TrainLive) ([]model.TrainDeparture, error) {
	if live.HasError() {
		return nil, errors.Wrap(ErrQueryError, live.ErrorMessage())
	}

	departures := []model.TrainDeparture{}

	if live.Departures == nil {
		return departures, nil
	}

	for _, departure := range live.Departures.All {
		departures = append(departures, model.TrainDeparture{
			OriginName:      departure.OriginName,
			DestinationName: departure.DestinationName,
			Status:          departure.Status,
			Scheduled:       departure.AimedDepartureTime,
			Estimated:       departure.ExpectedDepartureTime,
			Platform:        departure.Platform,
			OperatorName:    departure.OperatorName,
		})
	}

	return departures, nil
}

func busScheduledTimes(departures []model.BusDeparture) []string {
	scheduled := make([]string, 0, len(departures))
	for _, departure := range departures {
		scheduled = append(scheduled, departure.Scheduled)
	}
	return scheduled
}

func trainScheduledTimes(departures []model.TrainDeparture) []string {
	scheduled := make([]string, 0, len(departures))
	for _, departure := range departures {
		scheduled = append(scheduled, departure.Scheduled)
	}
	return scheduled
}

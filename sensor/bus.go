package sensor

import (
	"fmt"
	"regexp"
	"time"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	transportapi_client "github.com/TfGMEnterprise/uk-transport-sensors/transportapi-client"
	"github.com/pkg/errors"
)

// BusSensor counts down to the next bus from a stop whose direction
// matches a pattern
type BusSensor struct {
	base
	StopAtcocode string
	Direction    string
	directionRe  *regexp.Regexp
}

func NewBusSensor(logger *dlog.Logger, client transportapi_client.TransportAPIClientInterface, credentials Credentials, stopAtcocode string, direction string) (*BusSensor, error) {
	directionRe, err := regexp.Compile("(?i)" + direction)
	if err != nil {
		return nil, errors.Wrapf(err, "direction `%s` is not a valid pattern", direction)
	}

	state := model.NewSensorState(
		model.StateKey(model.Bus, stopAtcocode, direction),
		fmt.Sprintf("Next bus to %s", direction),
		model.Bus,
	)
	state.Attributes.Bus = &model.BusAttributes{
		NextBuses: []model.BusDeparture{},
	}

	return &BusSensor{
		base: newBase(
			logger,
			client,
			credentials,
			fmt.Sprintf("bus/stop/%s/live.json", stopAtcocode),
			map[string]string{
				"group":     "route",
				"nextbuses": "no",
			},
			state,
		),
		StopAtcocode: stopAtcocode,
		Direction:    direction,
		directionRe:  directionRe,
	}, nil
}

// Update fetches the live departures for the stop. When the fetch fails
// the previous departures and state are kept
func (s *BusSensor) Update(now time.Time) {
	s.Logger.Debugf("Update %s", s.state.Key)

	live := model.BusLive{}
	if !s.fetch(&live) {
		return
	}

	nextBuses := FilterBusDepartures(&live, s.directionRe)
	s.Logger.Debugf("%s: %d matching departure(s)", s.state.Key, len(nextBuses))

	s.state.Attributes.Bus = &model.BusAttributes{
		Atcocode:    live.Atcocode,
		Locality:    live.Locality,
		StopName:    live.StopName,
		RequestTime: live.RequestTime,
		NextBuses:   nextBuses,
	}

	s.updateMinutes(now, busScheduledTimes(nextBuses))
}

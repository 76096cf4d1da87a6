package main

import (
	"strconv"
	"strings"

	"github.com/TfGMEnterprise/uk-transport-sensors/model"
)

// transformNextDeparture shows the countdown for a sensor with a next
// departure and the state marker otherwise
func (p *Presenter) transformNextDeparture(state *model.SensorState) string {
	p.Logger.Debug("transformNextDeparture")

	if state.Status != model.StatusOK || state.Minutes == nil {
		return state.State
	}

	wait := *state.Minutes

	if wait == 0 {
		return "Approaching"
	}

	mins := "min"

	if wait != 1 {
		mins += "s"
	}

	return strconv.Itoa(wait) + " " + mins
}

func (p *Presenter) transformDepartures(state *model.SensorState) []model.DepartureDisplay {
	p.Logger.Debug("transformDepartures")

	displays := []model.DepartureDisplay{}

	if bus := state.Attributes.Bus; bus != nil {
		for _, dep := range bus.NextBuses {
			displays = append(displays, model.DepartureDisplay{
				DepartureTime:   dep.Scheduled,
				ServiceNumber:   dep.Route,
				Destination:     dep.Direction,
				DepartureStatus: optional(dep.Estimated),
			})
		}
	}

	if train := state.Attributes.Train; train != nil {
		for _, dep := range train.NextTrains {
			status := dep.Status
			if dep.Estimated != "" && dep.Estimated != dep.Scheduled {
				status = strings.TrimSpace(status + " " + dep.Estimated)
			}

			displays = append(displays, model.DepartureDisplay{
				DepartureTime:   dep.Scheduled,
				Destination:     dep.DestinationName,
				DepartureStatus: optional(status),
				Platform:        optional(dep.Platform),
			})
		}
	}

	return displays
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package main

import (
	"testing"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/TfGMEnterprise/uk-transport-sensors/test_helpers"
)

func Test_transformNextDeparture(t *testing.T) {
	p := Presenter{
		Logger: dlog.Discard(),
	}

	countdown := func(minutes int) *model.SensorState {
		state := model.NewSensorState("bus:450012345:leeds", "Next bus to Leeds", model.Bus)
		state.SetMinutes(minutes)
		return &state
	}

	t.Run("should return `Approaching` if the next departure is less than one minute away", func(t *testing.T) {
		test_helpers.AssertString(t, p.transformNextDeparture(countdown(0)), "Approaching")
	})

	t.Run("should return `1 min` if the next departure is one minute away", func(t *testing.T) {
		test_helpers.AssertString(t, p.transformNextDeparture(countdown(1)), "1 min")
	})

	t.Run("should return `N mins` otherwise", func(t *testing.T) {
		test_helpers.AssertString(t, p.transformNextDeparture(countdown(1439)), "1439 mins")
	})

	t.Run("should return the marker without a next departure", func(t *testing.T) {
		state := countdown(5)
		state.SetNoDepartures()
		test_helpers.AssertString(t, p.transformNextDeparture(state), "No departures")

		state.SetQueryError()
		test_helpers.AssertString(t, p.transformNextDeparture(state), "Error in query")
	})

	t.Run("should return nothing before the first update", func(t *testing.T) {
		state := model.NewSensorState("bus:450012345:leeds", "Next bus to Leeds", model.Bus)
		test_helpers.AssertString(t, p.transformNextDeparture(&state), "")
	})
}

func Test_transformDepartures(t *testing.T) {
	p := Presenter{
		Logger: dlog.Discard(),
	}

	t.Run("should show the route, direction and estimate of each bus", func(t *testing.T) {
		state := model.NewSensorState("bus:450012345:leeds", "Next bus to Leeds", model.Bus)
		state.Attributes.Bus = &model.BusAttributes{
			NextBuses: []model.BusDeparture{
				{Route: "10", Direction: "Leeds City Centre", Scheduled: "10:15", Estimated: "10:16"},
				{Route: "1", Direction: "Holt Park via Leeds", Scheduled: "10:30"},
			},
		}

		got := p.transformDepartures(&state)

		test_helpers.AssertInt(t, len(got), 2)
		test_helpers.AssertString(t, got[0].DepartureTime, "10:15")
		test_helpers.AssertString(t, got[0].ServiceNumber, "10")
		test_helpers.AssertString(t, got[0].Destination, "Leeds City Centre")
		test_helpers.AssertString(t, *got[0].DepartureStatus, "10:16")
		if got[1].DepartureStatus != nil {
			t.Errorf("got `%s`, want no departure status", *got[1].DepartureStatus)
		}
	})

	t.Run("should show the status, expected time and platform of each train", func(t *testing.T) {
		state := model.NewSensorState("train:wim:wat", "Next train to WAT", model.Train)
		state.Attributes.Train = &model.TrainAttributes{
			NextTrains: []model.TrainDeparture{
				{DestinationName: "London Waterloo", Status: "LATE", Scheduled: "10:25", Estimated: "10:27", Platform: "5"},
				{DestinationName: "London Waterloo", Status: "ON TIME", Scheduled: "10:40", Estimated: "10:40"},
			},
		}

		got := p.transformDepartures(&state)

		test_helpers.AssertInt(t, len(got), 2)
		test_helpers.AssertString(t, *got[0].DepartureStatus, "LATE 10:27")
		test_helpers.AssertString(t, *got[0].Platform, "5")
		test_helpers.AssertString(t, got[0].ServiceNumber, "")
		test_helpers.AssertString(t, *got[1].DepartureStatus, "ON TIME")
		if got[1].Platform != nil {
			t.Errorf("got `%s`, want no platform", *got[1].Platform)
		}
	})
}

package model

import (
	"encoding/json"
	"testing"
)

func TestSensorState(t *testing.T) {
	t.Run("starts unknown with unit, icon and attribution", func(t *testing.T) {
		s := NewSensorState("bus:450012345:leeds", "Next bus to leeds", Bus)

		if s.Status != StatusUnknown || s.State != "" || s.Minutes != nil {
			t.Errorf("unexpected initial state %#v", s)
		}

		if s.UnitOfMeasurement != "min" {
			t.Errorf("got `%s`, want `min`", s.UnitOfMeasurement)
		}

		if s.Icon != "mdi:bus" {
			t.Errorf("got `%s`, want `mdi:bus`", s.Icon)
		}

		if s.Attributes.Attribution != Attribution {
			t.Errorf("got `%s`, want `%s`", s.Attributes.Attribution, Attribution)
		}
	})

	t.Run("moves between minutes and markers", func(t *testing.T) {
		s := NewSensorState("train:wim:wat", "Next train to WAT", Train)

		s.SetMinutes(5)
		if s.Status != StatusOK || s.State != "5" || *s.Minutes != 5 {
			t.Errorf("unexpected state %#v", s)
		}

		s.SetQueryError()
		if s.Status != StatusQueryError || s.State != QueryErrorState || s.Minutes != nil {
			t.Errorf("unexpected state %#v", s)
		}

		s.SetNoDepartures()
		if s.Status != StatusNoDepartures || s.State != NoDeparturesState || s.Minutes != nil {
			t.Errorf("unexpected state %#v", s)
		}
	})

	t.Run("round trips through JSON with tagged attributes", func(t *testing.T) {
		s := NewSensorState("train:wim:wat", "Next train to WAT", Train)
		s.SetMinutes(12)
		s.Attributes.Train = &TrainAttributes{
			StationCode: "WIM",
			NextTrains: []TrainDeparture{
				{DestinationName: "London Waterloo", Scheduled: "10:12"},
			},
		}

		b, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}

		got := SensorState{}
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatal(err)
		}

		if got.Attributes.Bus != nil {
			t.Error("bus attributes should be absent")
		}

		if got.Attributes.Train == nil || got.Attributes.Train.NextTrains[0].Scheduled != "10:12" {
			t.Errorf("unexpected train attributes %#v", got.Attributes.Train)
		}

		if got.Minutes == nil || *got.Minutes != 12 {
			t.Errorf("unexpected minutes %v", got.Minutes)
		}
	})
}

func TestStateKey(t *testing.T) {
	got := StateKey(Bus, "450012345", " Leeds  City Centre ")
	want := "bus:450012345:leeds_city_centre"

	if got != want {
		t.Errorf("got `%s`, want `%s`", got, want)
	}

	if StateKey(Train, "WIM", "WAT") != StateKey(Train, "wim", "wat") {
		t.Error("keys should be case-insensitive")
	}
}

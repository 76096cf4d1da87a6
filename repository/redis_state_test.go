package repository

import (
	"encoding/json"
	"testing"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/TfGMEnterprise/uk-transport-sensors/test_helpers"
	"github.com/alicebob/miniredis/v2"
	"github.com/fortytw2/leaktest"
)

func TestRedisStateStore(t *testing.T) {
	defer leaktest.Check(t)()

	s, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	pool := NewRedisPoolForHost(s.Addr())
	defer pool.Close()

	store := NewRedisStateStore(dlog.Discard(), pool)

	bus := model.NewSensorState("bus:450012345:leeds", "Next bus to Leeds", model.Bus)
	bus.SetMinutes(5)
	bus.Attributes.Bus = &model.BusAttributes{
		Atcocode:  "450012345",
		NextBuses: []model.BusDeparture{{Route: "10", Direction: "Leeds City Centre", Scheduled: "10:15", Estimated: "10:16"}},
	}

	train := model.NewSensorState("train:wim:wat", "Next train to WAT", model.Train)
	train.SetQueryError()

	t.Run("saves every state under its namespaced key", func(t *testing.T) {
		if err := store.SaveStates([]model.SensorState{bus, train}); err != nil {
			t.Fatal(err)
		}

		got, err := s.Get("uk-transport:bus:450012345:leeds")
		if err != nil {
			t.Fatal(err)
		}

		want, err := json.Marshal(bus)
		if err != nil {
			t.Fatal(err)
		}

		test_helpers.AssertJSONEquality(t, got, string(want))

		if !s.Exists("uk-transport:train:wim:wat") {
			t.Error("train state should be stored")
		}
	})

	t.Run("loads a saved state", func(t *testing.T) {
		got, err := store.LoadState("bus:450012345:leeds")
		if err != nil {
			t.Fatal(err)
		}

		if got == nil {
			t.Fatal("state should be found")
		}

		test_helpers.AssertString(t, got.State, "5")
		test_helpers.AssertInt(t, *got.Minutes, 5)
		test_helpers.AssertString(t, got.Attributes.Bus.NextBuses[0].Route, "10")
	})

	t.Run("returns nil for an unknown key", func(t *testing.T) {
		got, err := store.LoadState("bus:0000000000:nowhere")
		if err != nil {
			t.Fatal(err)
		}

		if got != nil {
			t.Errorf("got %#v, want nil", got)
		}
	})

	t.Run("reports a stored value that is not a state", func(t *testing.T) {
		if err := s.Set("uk-transport:bus:broken:x", "{"); err != nil {
			t.Fatal(err)
		}

		if _, err := store.LoadState("bus:broken:x"); err == nil {
			t.Error("should return an error")
		}
	})
}

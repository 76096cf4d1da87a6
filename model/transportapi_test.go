package model

import (
	"encoding/json"
	"testing"
)

func TestBusLive_UnmarshalJSON(t *testing.T) {
	t.Run("keeps routes in response order", func(t *testing.T) {
		body := `{
			"atcocode": "450012345",
			"stop_name": "Park Row",
			"locality": "Leeds",
			"request_time": "2019-05-20T10:00:00+01:00",
			"departures": {
				"X84": [{"line": "X84", "direction": "Otley", "aimed_departure_time": "10:20", "best_departure_estimate": "10:21"}],
				"10": [
					{"line": "10", "direction": "Leeds City Centre", "aimed_departure_time": "10:15", "best_departure_estimate": "10:16"},
					{"line": "10", "direction": "Leeds City Centre", "aimed_departure_time": "10:45", "best_departure_estimate": "10:45"}
				],
				"1": []
			}
		}`

		live := BusLive{}
		if err := json.Unmarshal([]byte(body), &live); err != nil {
			t.Fatal(err)
		}

		if err := live.Check(); err != nil {
			t.Fatal(err)
		}

		var routes []string
		for _, r := range live.Departures {
			routes = append(routes, r.Route)
		}

		want := []string{"X84", "10", "1"}
		if len(routes) != len(want) {
			t.Fatalf("got routes %v, want %v", routes, want)
		}

		for i := range want {
			if routes[i] != want[i] {
				t.Errorf("got routes %v, want %v", routes, want)
				break
			}
		}

		if got := live.Departures[1].Departures[1].AimedDepartureTime; got != "10:45" {
			t.Errorf("got `%s`, want `%s`", got, "10:45")
		}

		if live.StopName != "Park Row" || live.Locality != "Leeds" {
			t.Errorf("unexpected stop details %#v", live)
		}
	})

	t.Run("an empty departures object is valid", func(t *testing.T) {
		live := BusLive{}
		if err := json.Unmarshal([]byte(`{"departures": {}}`), &live); err != nil {
			t.Fatal(err)
		}

		if err := live.Check(); err != nil {
			t.Error(err)
		}
	})

	t.Run("a missing departures object fails the check", func(t *testing.T) {
		live := BusLive{}
		if err := json.Unmarshal([]byte(`{"atcocode": "450012345"}`), &live); err != nil {
			t.Fatal(err)
		}

		if err := live.Check(); err == nil {
			t.Error("should return an error")
		}
	})

	t.Run("null departures fails the check", func(t *testing.T) {
		live := BusLive{}
		if err := json.Unmarshal([]byte(`{"departures": null}`), &live); err != nil {
			t.Fatal(err)
		}

		if err := live.Check(); err == nil {
			t.Error("should return an error")
		}
	})

	t.Run("departures that are not an object are rejected", func(t *testing.T) {
		live := BusLive{}
		if err := json.Unmarshal([]byte(`{"departures": ["10"]}`), &live); err == nil {
			t.Error("should return an error")
		}
	})
}

func TestTrainLive_Check(t *testing.T) {
	t.Run("departures.all is required", func(t *testing.T) {
		live := TrainLive{}
		if err := json.Unmarshal([]byte(`{"station_code": "WIM", "departures": {}}`), &live); err != nil {
			t.Fatal(err)
		}

		if err := live.Check(); err == nil {
			t.Error("should return an error")
		}
	})

	t.Run("an explicit error is a valid response", func(t *testing.T) {
		live := TrainLive{}
		if err := json.Unmarshal([]byte(`{"error": "Station code not recognised"}`), &live); err != nil {
			t.Fatal(err)
		}

		if err := live.Check(); err != nil {
			t.Error(err)
		}

		if !live.HasError() {
			t.Error("should report the query error")
		}
	})

	t.Run("any value of the error key is a query error", func(t *testing.T) {
		bodies := map[string]string{
			`{"error": null}`:                          "null",
			`{"error": 400}`:                           "400",
			`{"error": {"message": "bad station"}}`:    `{"message": "bad station"}`,
			`{"error": "Station code not recognised"}`: "Station code not recognised",
		}

		for body, message := range bodies {
			live := TrainLive{}
			if err := json.Unmarshal([]byte(body), &live); err != nil {
				t.Fatalf("%s: %s", body, err)
			}

			if err := live.Check(); err != nil {
				t.Errorf("%s: %s", body, err)
			}

			if !live.HasError() {
				t.Errorf("%s: should report the query error", body)
			}

			if got := live.ErrorMessage(); got != message {
				t.Errorf("%s: got `%s`, want `%s`", body, got, message)
			}
		}
	})

	t.Run("reads departures.all", func(t *testing.T) {
		live := TrainLive{}
		body := `{"station_code": "WIM", "departures": {"all": [{"origin_name": "Woking", "destination_name": "London Waterloo", "platform": null, "aimed_departure_time": "10:02"}]}}`
		if err := json.Unmarshal([]byte(body), &live); err != nil {
			t.Fatal(err)
		}

		if err := live.Check(); err != nil {
			t.Fatal(err)
		}

		if live.HasError() {
			t.Error("should not report a query error")
		}

		if got := live.Departures.All[0].DestinationName; got != "London Waterloo" {
			t.Errorf("got `%s`, want `%s`", got, "London Waterloo")
		}
	})
}

package model

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// BusLive is the body of a bus/stop/{atcocode}/live.json response
// requested with group=route
type BusLive struct {
	Atcocode    string    `json:"atcocode"`
	SMSCode     string    `json:"smscode"`
	RequestTime string    `json:"request_time"`
	Name        string    `json:"name"`
	StopName    string    `json:"stop_name"`
	Bearing     string    `json:"bearing"`
	Indicator   string    `json:"indicator"`
	Locality    string    `json:"locality"`
	Departures  BusRoutes `json:"departures"`
}

type BusLiveDeparture struct {
	Mode                  string `json:"mode"`
	Line                  string `json:"line"`
	LineName              string `json:"line_name"`
	Direction             string `json:"direction"`
	Operator              string `json:"operator"`
	OperatorName          string `json:"operator_name"`
	Date                  string `json:"date"`
	ExpectedDepartureDate string `json:"expected_departure_date"`
	AimedDepartureTime    string `json:"aimed_departure_time"`
	ExpectedDepartureTime string `json:"expected_departure_time"`
	BestDepartureEstimate string `json:"best_departure_estimate"`
	Source                string `json:"source"`
}

// RouteDepartures holds the departures listed under one route key
type RouteDepartures struct {
	Route      string
	Departures []BusLiveDeparture
}

// BusRoutes keeps the route groups of a live bus response in the order
// transportapi.com sent them, which a map would lose
type BusRoutes []RouteDepartures

func (r *BusRoutes) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "cannot read departures")
	}

	if tok == nil {
		*r = nil
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("departures must be an object keyed by route, got `%v`", tok)
	}

	routes := BusRoutes{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "cannot read route name")
		}

		route, ok := tok.(string)
		if !ok {
			return errors.Errorf("route name must be a string, got `%v`", tok)
		}

		var departures []BusLiveDeparture
		if err := dec.Decode(&departures); err != nil {
			return errors.Wrapf(err, "cannot decode departures for route `%s`", route)
		}

		routes = append(routes, RouteDepartures{
			Route:      route,
			Departures: departures,
		})
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "cannot read end of departures")
	}

	*r = routes

	return nil
}

// Check reports a response that decoded cleanly but carries no departures
// object at all
func (b *BusLive) Check() error {
	if b.Departures == nil {
		return errors.New("response has no departures")
	}

	return nil
}

// TrainLive is the body of a train/station/{code}/live.json response
type TrainLive struct {
	Date        string               `json:"date"`
	TimeOfDay   string               `json:"time_of_day"`
	RequestTime string               `json:"request_time"`
	StationName string               `json:"station_name"`
	StationCode string               `json:"station_code"`
	Departures  *TrainLiveDepartures `json:"departures"`
	Error       json.RawMessage      `json:"error"`
}

type TrainLiveDepartures struct {
	All []TrainLiveDeparture `json:"all"`
}

type TrainLiveDeparture struct {
	Mode                  string `json:"mode"`
	Service               string `json:"service"`
	TrainUID              string `json:"train_uid"`
	Platform              string `json:"platform"`
	Operator              string `json:"operator"`
	OperatorName          string `json:"operator_name"`
	AimedDepartureTime    string `json:"aimed_departure_time"`
	AimedArrivalTime      string `json:"aimed_arrival_time"`
	OriginName            string `json:"origin_name"`
	DestinationName       string `json:"destination_name"`
	Source                string `json:"source"`
	Category              string `json:"category"`
	Status                string `json:"status"`
	ExpectedArrivalTime   string `json:"expected_arrival_time"`
	ExpectedDepartureTime string `json:"expected_departure_time"`
}

// HasError reports whether transportapi.com rejected the query itself.
// Any top level error key counts, whatever its value, including null
func (t *TrainLive) HasError() bool {
	return len(t.Error) > 0
}

// ErrorMessage is the error value as text; a JSON string is unquoted and
// anything else is returned as sent
func (t *TrainLive) ErrorMessage() string {
	var message string
	if err := json.Unmarshal(t.Error, &message); err == nil {
		return message
	}

	return string(t.Error)
}

// Check accepts either an explicit query error or a departures.all list
func (t *TrainLive) Check() error {
	if t.HasError() {
		return nil
	}

	if t.Departures == nil || t.Departures.All == nil {
		return errors.New("response has no departures.all list")
	}

	return nil
}

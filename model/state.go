package model

import (
	"strconv"
	"strings"
)

type Status string

const (
	StatusUnknown      Status = "unknown"
	StatusOK           Status = "ok"
	StatusQueryError   Status = "error"
	StatusNoDepartures Status = "no_departures"
)

const (
	Attribution       = "Data provided by transportapi.com"
	UnitOfMeasurement = "min"

	QueryErrorState   = "Error in query"
	NoDeparturesState = "No departures"
)

// SensorState is what a sensor exposes after each update: a minute
// countdown or a marker in State, plus typed attributes
type SensorState struct {
	Key               string      `json:"key"`
	Name              string      `json:"name"`
	JourneyType       JourneyType `json:"journeyType"`
	Status            Status      `json:"status"`
	Minutes           *int        `json:"minutes,omitempty"`
	State             string      `json:"state"`
	UnitOfMeasurement string      `json:"unitOfMeasurement"`
	Icon              string      `json:"icon"`
	Attributes        Attributes  `json:"attributes"`
}

// Attributes is tagged by journey type: exactly one of Bus or Train is set
type Attributes struct {
	Attribution string           `json:"attribution"`
	Bus         *BusAttributes   `json:"bus,omitempty"`
	Train       *TrainAttributes `json:"train,omitempty"`
}

type BusAttributes struct {
	Atcocode    string         `json:"atcocode"`
	Locality    string         `json:"locality"`
	StopName    string         `json:"stop_name"`
	RequestTime string         `json:"request_time"`
	NextBuses   []BusDeparture `json:"next_buses"`
}

type TrainAttributes struct {
	StationCode     string           `json:"station_code"`
	DestinationName string           `json:"destination_name"`
	NextTrains      []TrainDeparture `json:"next_trains"`
}

func NewSensorState(key string, name string, journeyType JourneyType) SensorState {
	return SensorState{
		Key:               key,
		Name:              name,
		JourneyType:       journeyType,
		Status:            StatusUnknown,
		UnitOfMeasurement: UnitOfMeasurement,
		Icon:              journeyType.Icon(),
		Attributes: Attributes{
			Attribution: Attribution,
		},
	}
}

func (s *SensorState) SetMinutes(minutes int) {
	s.Status = StatusOK
	s.Minutes = &minutes
	s.State = strconv.Itoa(minutes)
}

func (s *SensorState) SetQueryError() {
	s.Status = StatusQueryError
	s.Minutes = nil
	s.State = QueryErrorState
}

func (s *SensorState) SetNoDepartures() {
	s.Status = StatusNoDepartures
	s.Minutes = nil
	s.State = NoDeparturesState
}

// StateKey identifies a sensor by journey type, stop or station code and
// match criterion. Codes are case-insensitive and whitespace in the
// criterion collapses to underscores
func StateKey(journeyType JourneyType, code string, filter string) string {
	return strings.ToLower(strings.Join([]string{
		string(journeyType),
		strings.TrimSpace(code),
		strings.Join(strings.Fields(filter), "_"),
	}, ":"))
}

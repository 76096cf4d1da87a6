package sensor

import (
	"time"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	transportapi_client "github.com/TfGMEnterprise/uk-transport-sensors/transportapi-client"
)

// Sensor is a live departures sensor. Update is called once per scan
// interval and never concurrently with itself
type Sensor interface {
	Name() string
	Key() string
	Icon() string
	UnitOfMeasurement() string
	Update(now time.Time)
	State() model.SensorState
}

// Credentials are shared read-only by every sensor built from one
// configuration
type Credentials struct {
	AppID   string
	AppKey  string
	BaseURL string
}

// base holds what bus and train sensors share: the request they send on
// every update and the state they expose
type base struct {
	Logger  *dlog.Logger
	Client  transportapi_client.TransportAPIClientInterface
	request transportapi_client.Request
	state   model.SensorState
}

func newBase(logger *dlog.Logger, client transportapi_client.TransportAPIClientInterface, credentials Credentials, path string, params map[string]string, state model.SensorState) base {
	baseURL := credentials.BaseURL
	if baseURL == "" {
		baseURL = transportapi_client.DefaultBaseURL
	}

	return base{
		Logger: logger,
		Client: client,
		request: transportapi_client.Request{
			BaseURL: baseURL,
			Path:    path,
			AppID:   credentials.AppID,
			AppKey:  credentials.AppKey,
			Params:  params,
		},
		state: state,
	}
}

func (b *base) Name() string {
	return b.state.Name
}

func (b *base) Key() string {
	return b.state.Key
}

func (b *base) Icon() string {
	return b.state.Icon
}

func (b *base) UnitOfMeasurement() string {
	return b.state.UnitOfMeasurement
}

// State returns a copy of the current state that later updates will not
// modify
func (b *base) State() model.SensorState {
	s := b.state

	if s.Minutes != nil {
		minutes := *s.Minutes
		s.Minutes = &minutes
	}

	if s.Attributes.Bus != nil {
		bus := *s.Attributes.Bus
		bus.NextBuses = append([]model.BusDeparture{}, bus.NextBuses...)
		s.Attributes.Bus = &bus
	}

	if s.Attributes.Train != nil {
		train := *s.Attributes.Train
		train.NextTrains = append([]model.TrainDeparture{}, train.NextTrains...)
		s.Attributes.Train = &train
	}

	return s
}

func (b *base) fetch(v interface{}) bool {
	return b.Client.Fetch(b.request, v)
}

// updateMinutes sets the state from the nearest scheduled departure, or
// to the no departures marker when there is none
func (b *base) updateMinutes(now time.Time, scheduled []string) {
	minutes, err := model.MinutesUntilNext(now, scheduled)
	if err != nil {
		b.Logger.Debugf("%s: %s", b.state.Name, err)
		b.state.SetNoDepartures()
		return
	}

	b.state.SetMinutes(minutes)
}

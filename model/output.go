package model

// Output contains:
// name - the sensor name, e.g. "Next bus to Leeds";
// next departure - a countdown ("Approaching", "1 min", "12 mins") or the
//   state marker when there is nothing to count down to;
// departures - a collection of DepartureDisplay items
type Output struct {
	Name          string             `json:"name"`
	JourneyType   JourneyType        `json:"journeyType"`
	Status        Status             `json:"status"`
	NextDeparture string             `json:"nextDeparture"`
	Attribution   string             `json:"attribution"`
	Departures    []DepartureDisplay `json:"departures"`
}

// DepartureDisplay contains:
// departure time - the scheduled HH:MM;
// service number - the bus route, empty for trains;
// destination - the bus direction or the train destination;
// departure status - the estimate for buses, or the status and expected
//   time for trains ("On time", "Late 10:32"); and
// platform - the rail platform, or nil if there isn't one
type DepartureDisplay struct {
	DepartureTime   string  `json:"departureTime,omitempty"`
	ServiceNumber   string  `json:"serviceNumber,omitempty"`
	Destination     string  `json:"destination,omitempty"`
	DepartureStatus *string `json:"departureStatus,omitempty"`
	Platform        *string `json:"platform,omitempty"`
}

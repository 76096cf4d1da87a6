package model

// BusDeparture is a departure from a bus stop whose direction matched
// the sensor's pattern. Scheduled is always HH:MM; Estimated is HH:MM or
// status text from the operator
type BusDeparture struct {
	Route     string `json:"route"`
	Direction string `json:"direction"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
}

// TrainDeparture is a passenger departure from a rail station towards the
// sensor's destination
type TrainDeparture struct {
	OriginName      string `json:"origin_name"`
	DestinationName string `json:"destination_name"`
	Status          string `json:"status"`
	Scheduled       string `json:"scheduled"`
	Estimated       string `json:"estimated"`
	Platform        string `json:"platform"`
	OperatorName    string `json:"operator_name"`
}

package model

import (
	"regexp"
	"strings"
)

type JourneyType string

const (
	Bus   JourneyType = "bus"
	Train JourneyType = "train"
)

var crsCode = regexp.MustCompile(`^[A-Z]{3}$`)

// GetJourneyType tells bus stops and rail stations apart by the shape of
// their code: rail stations are addressed by a three-letter CRS code,
// anything else is treated as a bus stop atcocode
func GetJourneyType(code string) JourneyType {
	if crsCode.MatchString(strings.ToUpper(code)) {
		return Train
	}

	return Bus
}

func (jt JourneyType) Icon() string {
	if jt == Train {
		return "mdi:train"
	}

	return "mdi:bus"
}

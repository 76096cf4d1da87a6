package model

import (
	"time"

	"github.com/pkg/errors"
)

// ErrNoDepartures is returned when there is no departure time to count
// down to
var ErrNoDepartures = errors.New("no upcoming departures")

// MinutesUntil returns the whole minutes from now until the next time the
// clock reads hhmm. A clock time that has already passed today refers to
// tomorrow. Seconds are truncated, so the result is always in [0, 1439].
//
// The arithmetic is done on the wall clock reading of now, so a daylight
// saving change between now and the departure does not stretch or shrink
// the countdown.
func MinutesUntil(now time.Time, hhmm string) (int, error) {
	wallNow := wallClock(now)

	departing, err := NextOccurrence(wallNow, hhmm)
	if err != nil {
		return 0, err
	}

	return int(departing.Sub(wallNow) / time.Minute), nil
}

// NextOccurrence returns the next time at or after now that the clock in
// now's location reads hhmm
func NextOccurrence(now time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "departure time `%s` is not HH:MM", hhmm)
	}

	departing := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if departing.Before(now) {
		departing = time.Date(now.Year(), now.Month(), now.Day()+1, clock.Hour(), clock.Minute(), 0, 0, now.Location())
	}

	return departing, nil
}

// wallClock re-reads the clock face of t as UTC so that subtraction ignores
// offset changes
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// MinutesUntilNext returns the smallest MinutesUntil across the scheduled
// times. Times that are not HH:MM are skipped; ErrNoDepartures is
// returned when nothing valid is left.
func MinutesUntilNext(now time.Time, scheduled []string) (int, error) {
	next := -1

	for _, hhmm := range scheduled {
		mins, err := MinutesUntil(now, hhmm)
		if err != nil {
			continue
		}

		if next == -1 || mins < next {
			next = mins
		}
	}

	if next == -1 {
		return 0, ErrNoDepartures
	}

	return next, nil
}

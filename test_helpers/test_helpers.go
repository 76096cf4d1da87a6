package test_helpers

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func AssertBoolean(t *testing.T, got bool, want bool) {
	t.Helper()
	if got != want {
		t.Errorf("got '%t' want '%t'\n", got, want)
	}
}

func AssertInt(t *testing.T, got int, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got '%d' want '%d'\n", got, want)
	}
}

// AssertJSONEquality compares two JSON documents regardless of key order
// and whitespace
func AssertJSONEquality(t *testing.T, got string, expected string) {
	t.Helper()
	var gotValue interface{}
	var wantValue interface{}

	if err := json.Unmarshal([]byte(got), &gotValue); err != nil {
		t.Fatalf("%s\n", err.Error())
	}

	if err := json.Unmarshal([]byte(expected), &wantValue); err != nil {
		t.Fatalf("%s\n", err.Error())
	}

	if !reflect.DeepEqual(gotValue, wantValue) {
		t.Errorf("unexpected body: got %#v, wanted %#v\n", got, expected)
	}
}

func AssertString(t *testing.T, got string, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got '%s' want '%s'\n", got, want)
	}
}

func AdjustTime(now time.Time, d string) time.Time {
	duration, _ := time.ParseDuration(d)
	return now.Add(duration)
}

// ClockTime formats now adjusted by d as the HH:MM strings transportapi.com
// uses for departure times
func ClockTime(now time.Time, d string) string {
	return AdjustTime(now, d).Format("15:04")
}

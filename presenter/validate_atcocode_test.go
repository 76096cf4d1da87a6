package main

import (
	"testing"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/test_helpers"
)

func Test_validateCode(t *testing.T) {
	p := Presenter{
		Logger: dlog.Discard(),
	}

	t.Run("valid bus stop atcocode", func(t *testing.T) {
		got := p.validateCode("450012345")
		test_helpers.AssertBoolean(t, got, true)
	})

	t.Run("valid bus station stand atcocode", func(t *testing.T) {
		got := p.validateCode("1800BNIN0A1")
		test_helpers.AssertBoolean(t, got, true)
	})

	t.Run("valid lower case atcocode", func(t *testing.T) {
		got := p.validateCode("1800ne43431")
		test_helpers.AssertBoolean(t, got, true)
	})

	t.Run("valid CRS code", func(t *testing.T) {
		got := p.validateCode("WIM")
		test_helpers.AssertBoolean(t, got, true)
	})

	t.Run("valid lower case CRS code", func(t *testing.T) {
		got := p.validateCode("wat")
		test_helpers.AssertBoolean(t, got, true)
	})

	t.Run("three letter lower case word is a CRS code", func(t *testing.T) {
		got := p.validateCode("foo")
		test_helpers.AssertBoolean(t, got, true)
	})

	t.Run("short code with a digit is neither", func(t *testing.T) {
		got := p.validateCode("fo0")
		test_helpers.AssertBoolean(t, got, false)
	})

	t.Run("invalid code", func(t *testing.T) {
		got := p.validateCode("foo!")
		test_helpers.AssertBoolean(t, got, false)
	})

	t.Run("code too long", func(t *testing.T) {
		got := p.validateCode("1800BNIN0A1XY")
		test_helpers.AssertBoolean(t, got, false)
	})
}

package main

import (
	"regexp"
	"strings"
)

var (
	atcocodeRe = regexp.MustCompile(`^[A-Z0-9]{8,12}$`)
	crsCodeRe  = regexp.MustCompile(`^[A-Z]{3}$`)
)

// validateCode accepts a bus stop atcocode or a three letter rail station
// CRS code, in either case
func (p *Presenter) validateCode(code string) bool {
	p.Logger.Debugf("validateCode: %s", code)
	code = strings.ToUpper(code)
	return atcocodeRe.MatchString(code) || crsCodeRe.MatchString(code)
}

// Package seasondate turns operator input such as "next monday" or "2026-11-02" into the
// calendar day a season starts on.
package seasondate

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnrecognized is returned when the input is neither an ISO date nor a phrase the
// natural-language rules understand.
var ErrUnrecognized = errors.New("unrecognized date")

var zoneAliases = map[string]string{
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"EST": "America/New_York",
	"EDT": "America/New_York",
}

// Parser resolves dates relative to now in a fixed location.
type Parser struct {
	loc  *time.Location
	now  func() time.Time
	when *when.Parser
}

// NewParser accepts an IANA zone name or a US abbreviation. An empty zone means UTC and a
// nil clock means time.Now.
func NewParser(zone string, now func() time.Time) (*Parser, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &Parser{loc: loc, now: now, when: w}, nil
}

// LoadZone resolves a zone name, accepting the common US abbreviations.
func LoadZone(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return time.UTC, nil
	}
	if full, ok := zoneAliases[strings.ToUpper(zone)]; ok {
		zone = full
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", zone, err)
	}
	return loc, nil
}

// Parse returns midnight of the day the input names.
func (p *Parser) Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnrecognized
	}

	if t, err := time.ParseInLocation(time.DateOnly, input, p.loc); err == nil {
		return t, nil
	}

	r, err := p.when.Parse(strings.ToLower(input), p.now().In(p.loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, input)
	}

	t := r.Time.In(p.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc), nil
}

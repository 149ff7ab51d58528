package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Series is the age/skill category a club can field a squad in. Every
// series runs its own sub-schedule and its own standings table.
type Series string

const (
	SeriesPrimera     Series = "primera"
	SeriesSegunda     Series = "segunda"
	SeriesSuperSenior Series = "super_senior"
)

// AllSeries lists the series in fixture order.
var AllSeries = []Series{SeriesPrimera, SeriesSegunda, SeriesSuperSenior}

var ErrInvalidSeries = errors.New("invalid series")

func ParseSeries(s string) (Series, error) {
	switch Series(s) {
	case SeriesPrimera, SeriesSegunda, SeriesSuperSenior:
		return Series(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSeries, s)
}

// Division is the top-level competition bracket. Divisions never mix:
// each has its own fixture and its own standings.
type Division string

const (
	DivisionA Division = "A"
	DivisionB Division = "B"
)

var ErrInvalidDivision = errors.New("invalid division")

func ParseDivision(s string) (Division, error) {
	switch Division(s) {
	case DivisionA, DivisionB:
		return Division(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDivision, s)
}

// TimeOfDay is a wall-clock kickoff time without a date attached.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On applies the time of day to a calendar date, keeping the date's
// location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// KickoffSchedule maps each configured series to its kickoff time.
// A series absent from the map is never scheduled.
type KickoffSchedule map[Series]TimeOfDay

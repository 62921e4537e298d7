// Package timefmt formats article timestamps for display and for the content API.
package timefmt

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
)

const (
	isoLayout    = "2006-01-02T15:04:05"
	mediumDate   = "Jan 2, 2006"
	longTime     = "3:04:05 PM MST"
	isoUTCLayout = isoLayout + "Z"
)

// Options controls how published dates are rendered.
type Options struct {
	Locale   monday.Locale
	Location *time.Location
}

// DefaultOptions renders dates in en_US using the local time zone.
func DefaultOptions() Options {
	return Options{Locale: monday.LocaleEnUS, Location: time.Local}
}

// PublishedDate renders raw as "on <date> at <time>". Empty or unparseable
// input yields fallback.
func PublishedDate(raw, fallback string, opts Options) string {
	parsed, ok := Parse(raw)
	if !ok {
		return fallback
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	locale := opts.Locale
	if locale == "" {
		locale = monday.LocaleEnUS
	}

	local := parsed.In(loc)
	return "on " + monday.Format(local, mediumDate, locale) + " at " + monday.Format(local, longTime, locale)
}

// Parse reads a yyyy-MM-ddTHH:mm:ss timestamp in UTC. A trailing Z and any
// fractional seconds are ignored.
func Parse(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if idx := strings.Index(value, "Z"); idx != -1 {
		value = value[:idx]
	}
	if len(value) > len(isoLayout) {
		value = value[:len(isoLayout)]
	}

	parsed, err := time.ParseInLocation(isoLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// ISO formats t as a UTC timestamp understood by the content API.
func ISO(t time.Time) string {
	return t.UTC().Format(isoUTCLayout)
}

// DaysAgo returns the ISO timestamp of now minus days.
func DaysAgo(now time.Time, days int) string {
	return ISO(now.AddDate(0, 0, -days))
}

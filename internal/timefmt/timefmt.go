// Package timefmt renders stored UTC timestamps for display.
//
// The display mode is resolved once at start-up; Format never loads zone
// data itself.
package timefmt

import (
	"log"
	"strings"
	"time"
)

// Mode selects how stored timestamps are rendered.
type Mode int

const (
	// ModeNamedZone converts into a fixed IANA zone.
	ModeNamedZone Mode = iota
	// ModeSystemLocal converts into the process's local zone.
	ModeSystemLocal
	// ModeRaw returns the stored string untouched.
	ModeRaw
)

// DefaultZone is used when no display zone is configured.
const DefaultZone = "America/Toronto"

// DisplayLayout renders as e.g. "Mar 05 02:07 PM".
const DisplayLayout = "Jan 02 03:04 PM"

// StoreLayout is how timestamps are written to the store.
const StoreLayout = time.RFC3339Nano

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Formatter converts stored timestamps to display strings.
type Formatter struct {
	mode Mode
	loc  *time.Location
}

// New resolves a display setting: "" selects DefaultZone, "local" the system
// zone, "raw" disables formatting, anything else is an IANA zone name. A zone
// that cannot be loaded falls back to UTC so values still render.
func New(setting string) *Formatter {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "raw":
		return &Formatter{mode: ModeRaw}
	case "local":
		return &Formatter{mode: ModeSystemLocal, loc: time.Local}
	}

	name := strings.TrimSpace(setting)
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[timefmt] zone %q unavailable, displaying UTC: %v", name, err)
		loc = time.UTC
	}
	return &Formatter{mode: ModeNamedZone, loc: loc}
}

// Mode reports the resolved mode.
func (f *Formatter) Mode() Mode {
	return f.mode
}

// Location is nil in raw mode.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Format renders a stored timestamp. Empty input gives "", unparseable input
// is returned unchanged.
func (f *Formatter) Format(stored string) string {
	if stored == "" || f.mode == ModeRaw {
		return stored
	}
	t, ok := parse(stored)
	if !ok {
		return stored
	}
	return t.In(f.loc).Format(DisplayLayout)
}

// Now returns the current instant in store format.
func Now() string {
	return time.Now().UTC().Format(StoreLayout)
}

func parse(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		// Layouts without an offset parse as UTC.
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

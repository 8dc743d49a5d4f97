package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is a bookable time of day. It is a structured value so that
// scheduling logic never has to parse display strings; formatting happens
// only at the API boundary via Label.
type Slot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Label renders the slot the way the clinic has always stored it:
// zero-padded 24-hour digits with an AM/PM suffix, e.g. "09:30 AM" or
// "18:00 PM". Hours are NOT folded into 12-hour numbering; occupied-slot
// matching relies on label equality with historical records, so the
// format is load-bearing.
func (s Slot) Label() string {
	suffix := "AM"
	if s.Hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", s.Hour, s.Minute, suffix)
}

// Minutes returns the slot position as minutes from midnight.
func (s Slot) Minutes() int {
	return s.Hour*60 + s.Minute
}

// Before reports whether s starts earlier in the day than other.
func (s Slot) Before(other Slot) bool {
	return s.Minutes() < other.Minutes()
}

// ParseSlotLabel is the inverse of Label. It accepts "HH:MM AM" / "HH:MM PM"
// with 24-hour digits and ignores the suffix, which carries no information
// in this format.
func ParseSlotLabel(label string) (Slot, error) {
	clock, _, _ := strings.Cut(strings.TrimSpace(label), " ")
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return Slot{}, fmt.Errorf("invalid slot label %q", label)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Slot{}, fmt.Errorf("slot label %q out of range", label)
	}
	return Slot{Hour: hour, Minute: minute}, nil
}

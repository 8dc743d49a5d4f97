package schedule

import (
	"sort"
	"time"
)

// NextOccurrence returns the next calendar date strictly after from whose
// weekday matches name. When from already falls on that weekday the date
// rolls to the following week, matching how the clinic has always offered
// dates (same-day booking is not a thing here).
func NextOccurrence(name string, from time.Time) (time.Time, error) {
	target, err := ParseWeekday(name)
	if err != nil {
		return time.Time{}, err
	}

	diff := int(target - from.Weekday())
	if diff <= 0 {
		diff += 7
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	return day.AddDate(0, 0, diff), nil
}

// NextNOccurrences returns the first n occurrences of the weekday after
// from, ascending, each exactly seven days apart.
func NextNOccurrences(name string, from time.Time, n int) ([]time.Time, error) {
	first, err := NextOccurrence(name, from)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, first.AddDate(0, 0, 7*i))
	}
	return dates, nil
}

// MergeDates sorts date sets from several weekdays into a single
// ascending sequence.
func MergeDates(sets ...[]time.Time) []time.Time {
	var merged []time.Time
	for _, set := range sets {
		merged = append(merged, set...)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Before(merged[j]) })
	return merged
}

package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimeUnit = errors.New("invalid time unit")

var unitToSuffixMap = map[time.Duration]string{
	time.Nanosecond:  "ns",
	time.Microsecond: "µs",
	time.Millisecond: "ms",
	time.Second:      "s",
	time.Minute:      "min",
	time.Hour:        "h",
}

// ParseTimeUnit parses a unit name as accepted by the --time-unit flag.
func ParseTimeUnit(unitString string) (time.Duration, error) {
	switch strings.TrimSpace(strings.ToLower(unitString)) {
	case "ns":
		return time.Nanosecond, nil
	case "us", "µs":
		return time.Microsecond, nil
	case "ms":
		return time.Millisecond, nil
	case "s":
		return time.Second, nil
	case "m", "min":
		return time.Minute, nil
	case "h":
		return time.Hour, nil
	default:
		return 0, ErrInvalidTimeUnit
	}
}

// UnitSuffix returns the short name of the given time unit.
func UnitSuffix(unit time.Duration) string {
	suffix, ok := unitToSuffixMap[unit]
	if !ok {
		// this function is only used internally, panic if unknown time unit is passed
		panic("unknown time unit in UnitSuffix: " + unit.String())
	}
	return suffix
}

// ConvertToTimeUnit converts the given number of seconds into the given unit.
func ConvertToTimeUnit(seconds float64, unit time.Duration) float64 {
	if _, ok := unitToSuffixMap[unit]; !ok {
		panic("ConvertToTimeUnit: unknown time unit: " + unit.String())
	}
	return seconds / unit.Seconds()
}

// AutoTimeUnit picks milliseconds for sub-second values and seconds otherwise.
func AutoTimeUnit(seconds float64) time.Duration {
	if seconds < 1 {
		return time.Millisecond
	}
	return time.Second
}

// FormatNumber renders seconds as a number in the given unit, without the suffix.
// Seconds and larger get three decimals, nanoseconds none, everything else one.
func FormatNumber(seconds float64, unit time.Duration) string {
	value := ConvertToTimeUnit(seconds, unit)
	switch unit {
	case time.Second, time.Minute, time.Hour:
		return fmt.Sprintf("%.3f", value)
	case time.Nanosecond:
		return fmt.Sprintf("%.0f", value)
	default:
		return fmt.Sprintf("%.1f", value)
	}
}

// FormatTime renders seconds in the given unit, e.g. `12.3 ms` or `1.204 s`.
// A zero unit selects one automatically.
func FormatTime(seconds float64, unit time.Duration) string {
	if unit == 0 {
		unit = AutoTimeUnit(seconds)
	}
	return FormatNumber(seconds, unit) + " " + UnitSuffix(unit)
}

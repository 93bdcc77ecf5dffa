package tabroom

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDateTime parses the export's date/time strings. The date part is
// "M/D/YYYY"; the time part is "H:MM" or "H:MM:SS" followed by an AM/PM
// token. Components not requested must be absent. Fields left unparsed
// default to midnight on 1900-01-01, matching the upstream export's
// conventions for partial values.
func ParseDateTime(value string, withDate, withTime bool) (time.Time, error) {
	fields := strings.Fields(value)
	idx := 0

	year, month, day := 1900, 1, 1
	hour, minute, second := 0, 0, 0

	if withDate {
		if idx >= len(fields) {
			return time.Time{}, fmt.Errorf("%q: missing date component", value)
		}
		parts := strings.Split(fields[idx], "/")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("%q: date is not M/D/YYYY", value)
		}
		var err error
		if month, err = atoiInRange(parts[0], 1, 12); err != nil {
			return time.Time{}, fmt.Errorf("%q: month: %w", value, err)
		}
		if day, err = atoiInRange(parts[1], 1, 31); err != nil {
			return time.Time{}, fmt.Errorf("%q: day: %w", value, err)
		}
		if year, err = atoiInRange(parts[2], 1, 9999); err != nil {
			return time.Time{}, fmt.Errorf("%q: year: %w", value, err)
		}
		idx++
	}

	if withTime {
		if idx+1 >= len(fields) {
			return time.Time{}, fmt.Errorf("%q: missing time or meridiem component", value)
		}
		parts := strings.Split(fields[idx], ":")
		if len(parts) == 2 {
			parts = append(parts, "00") // seconds are optional
		}
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("%q: time is not H:MM[:SS]", value)
		}
		var err error
		if hour, err = atoiInRange(parts[0], 0, 23); err != nil {
			return time.Time{}, fmt.Errorf("%q: hour: %w", value, err)
		}
		if minute, err = atoiInRange(parts[1], 0, 59); err != nil {
			return time.Time{}, fmt.Errorf("%q: minute: %w", value, err)
		}
		if second, err = atoiInRange(parts[2], 0, 59); err != nil {
			return time.Time{}, fmt.Errorf("%q: second: %w", value, err)
		}
		meridiem := strings.ToUpper(fields[idx+1])
		switch meridiem {
		case "AM":
			if hour == 12 {
				hour = 0
			}
		case "PM":
			if hour < 12 {
				hour += 12
			}
		default:
			return time.Time{}, fmt.Errorf("%q: meridiem is not AM or PM", value)
		}
		idx += 2
	}

	if idx != len(fields) {
		return time.Time{}, fmt.Errorf("%q: trailing content after timestamp", value)
	}
	if !withDate && !withTime {
		return time.Time{}, fmt.Errorf("%q: neither date nor time requested", value)
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}

func atoiInRange(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

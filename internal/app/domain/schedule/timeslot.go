package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeToMinutes converts an "HH:MM" clock value to minutes since
// midnight. Malformed input is rejected explicitly rather than propagated.
func ParseTimeToMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q, expected HH:MM", clock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("malformed hours in %q", clock)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("malformed minutes in %q", clock)
	}

	return hours*60 + minutes, nil
}

// IntervalsOverlap reports whether two half-open minute intervals intersect.
// Touching endpoints do not count: [10:00,12:00) and [12:00,14:00) coexist.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

package rating

import (
	"fmt"
	"strings"

	"sonar/internal/bits"
	"sonar/internal/freq"
)

// Selector chooses which bit criterion drives the filter.
type Selector uint8

const (
	// UseMostCommon keeps candidates holding the most common bit (oxygen generator rating).
	UseMostCommon Selector = iota + 1
	// UseLeastCommon keeps candidates holding the least common bit (CO2 scrubber rating).
	UseLeastCommon
)

func (s Selector) String() string {
	switch s {
	case UseMostCommon:
		return "most-common"
	case UseLeastCommon:
		return "least-common"
	default:
		return "unknown"
	}
}

// Rating returns the name of the rating the selector produces.
func (s Selector) Rating() string {
	switch s {
	case UseMostCommon:
		return "oxygen generator rating"
	case UseLeastCommon:
		return "co2 scrubber rating"
	default:
		return "unknown rating"
	}
}

// ParseSelector accepts "most", "most-common", "oxygen", "least",
// "least-common" and "co2".
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "most", "most-common", "oxygen":
		return UseMostCommon, nil
	case "least", "least-common", "co2":
		return UseLeastCommon, nil
	default:
		return 0, fmt.Errorf("invalid selector: %q (expected: most|least)", s)
	}
}

// Target derives the bit to keep for the given table.
func (s Selector) Target(t freq.Table) bits.Bit {
	if s == UseLeastCommon {
		return freq.LeastCommon(t)
	}
	return freq.MostCommon(t)
}

package ergast

import (
	"fmt"
	"strconv"
)

// Scope narrows a query to a season and optionally a round. Zero fields are absent.
type Scope struct {
	Season int
	Round  int
}

// AllTime is the empty scope.
var AllTime = Scope{}

// Season scopes a query to one championship year.
func Season(year int) Scope {
	return Scope{Season: year}
}

// Round scopes a query to a single race of a season.
func Round(year, round int) Scope {
	return Scope{Season: year, Round: round}
}

// IsZero reports whether neither season nor round is set.
func (s Scope) IsZero() bool {
	return s.Season == 0 && s.Round == 0
}

func (s Scope) String() string {
	switch {
	case s.Season > 0 && s.Round > 0:
		return fmt.Sprintf("%d round %d", s.Season, s.Round)
	case s.Season > 0:
		return strconv.Itoa(s.Season)
	default:
		return "all"
	}
}

// segments returns the URL path segments for the scope: {season}/{round}, {season}, or none.
func (s Scope) segments() []string {
	switch {
	case s.Season > 0 && s.Round > 0:
		return []string{strconv.Itoa(s.Season), strconv.Itoa(s.Round)}
	case s.Season > 0:
		return []string{strconv.Itoa(s.Season)}
	default:
		return nil
	}
}

// validate rejects negative values and a round without a season.
func (s Scope) validate() error {
	if s.Season < 0 {
		return fmt.Errorf("%w: season must be positive, got %d", ErrInvalidArgument, s.Season)
	}
	if s.Round < 0 {
		return fmt.Errorf("%w: round must be positive, got %d", ErrInvalidArgument, s.Round)
	}
	if s.Round > 0 && s.Season == 0 {
		return fmt.Errorf("%w: round %d requires a season", ErrInvalidArgument, s.Round)
	}
	return nil
}

// requireBoth enforces the all-or-nothing rule of race-level endpoints.
func (s Scope) requireBoth() error {
	if (s.Season > 0) != (s.Round > 0) {
		return fmt.Errorf("%w: must specify both a season and a round", ErrInvalidArgument)
	}
	return nil
}

// requireFrom enforces an endpoint's first available season.
func (s Scope) requireFrom(first int, what string) error {
	if s.Season > 0 && s.Season < first {
		return fmt.Errorf("%w: %s only available from %d onward", ErrInvalidArgument, what, first)
	}
	return nil
}

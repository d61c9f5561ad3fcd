package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSport is returned for sport IDs with no configuration.
	ErrUnknownSport = errors.New("unknown sport")

	// ErrNotImplemented is returned for recognized sports that have no
	// generator yet.
	ErrNotImplemented = errors.New("sport not yet implemented")

	// ErrInfeasibleLineup is returned when a period's required positions
	// cannot all be filled from the available player pool.
	ErrInfeasibleLineup = errors.New("cannot fill all positions with available players")
)

func errUnknownSport(sportID string) error {
	return fmt.Errorf("%w: %q (supported: %s)", ErrUnknownSport, sportID, strings.Join(SupportedSports(), ", "))
}

// ValidationError reports input problems found before any per-period work
// begins. Problems is never empty.
type ValidationError struct {
	Context  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Context, strings.Join(e.Problems, ", "))
}

func newValidationError(context string, problems []string) error {
	return &ValidationError{Context: context, Problems: problems}
}

package generator

import (
	"fmt"
	"strings"
)

// NewGenerator returns the lineup generator for a sport ID. Matching is
// case-insensitive and ignores surrounding whitespace. Recognized sports
// without a generator yet return ErrNotImplemented; everything else returns
// ErrUnknownSport.
func NewGenerator(sportID string) (LineupGenerator, error) {
	switch normalizeSportID(sportID) {
	case "":
		return nil, fmt.Errorf("%w: sport id is required", ErrUnknownSport)
	case "baseball":
		return NewBaseballGenerator(), nil
	case "volleyball":
		return NewVolleyballGenerator(), nil
	case "soccer":
		return nil, fmt.Errorf("%w: soccer", ErrNotImplemented)
	default:
		return nil, errUnknownSport(sportID)
	}
}

// SupportedSports returns the sport IDs that have implemented generators.
func SupportedSports() []string {
	return []string{"baseball", "volleyball"}
}

// IsSportSupported reports whether a sport has an implemented generator.
func IsSportSupported(sportID string) bool {
	normalized := normalizeSportID(sportID)
	for _, s := range SupportedSports() {
		if s == normalized {
			return true
		}
	}
	return false
}

func normalizeSportID(sportID string) string {
	return strings.ToLower(strings.TrimSpace(sportID))
}

package generator

import (
	"fmt"

	"github.com/benchcoach/lineup-service/internal/types"
)

// ProgressFunc receives one update per generated period. A nil ProgressFunc
// disables progress reporting.
type ProgressFunc func(update types.ProgressUpdate)

// LineupGenerator generates one lineup per period for a sport.
type LineupGenerator interface {
	// Sport returns the sport ID this generator is bound to.
	Sport() string

	// Generate produces one Lineup per period. It validates its inputs up
	// front and fails the whole call on any per-period infeasibility; it
	// never returns a partial lineup.
	Generate(players []types.Player, gameInfo types.GameInfo) ([]types.Lineup, error)

	// GenerateWithProgress is Generate with a per-period progress callback.
	GenerateWithProgress(players []types.Player, gameInfo types.GameInfo, progress ProgressFunc) ([]types.Lineup, error)
}

// validateGameInfo checks the boundary contract: game_id and team_id must
// be present even though the engine does not use them.
func validateGameInfo(gameInfo types.GameInfo) []string {
	var problems []string
	if gameInfo.GameID == "" {
		problems = append(problems, "game_info missing required field: game_id")
	}
	if gameInfo.TeamID == "" {
		problems = append(problems, "game_info missing required field: team_id")
	}
	return problems
}

// validatePlayers checks that the roster can support the sport at all:
// enough players, complete and unique player records, and at least one
// candidate for every required position.
func validatePlayers(cfg SportConfig, players []types.Player) []string {
	var problems []string

	if len(players) < cfg.TotalPositions {
		problems = append(problems, fmt.Sprintf(
			"insufficient players: need %d, have %d", cfg.TotalPositions, len(players)))
	}

	seen := make(map[string]bool, len(players))
	for i, p := range players {
		if p.ID == "" {
			problems = append(problems, fmt.Sprintf("player at index %d missing ID", i))
			continue
		}
		if seen[p.ID] {
			problems = append(problems, fmt.Sprintf("duplicate player ID: %s", p.ID))
		}
		seen[p.ID] = true
		if p.Name == "" {
			problems = append(problems, fmt.Sprintf("player at index %d missing name", i))
		}
	}

	for _, reqPos := range cfg.RequiredPositions {
		staffed := false
		for _, p := range players {
			if p.CanPlayPosition(reqPos) {
				staffed = true
				break
			}
		}
		if !staffed {
			problems = append(problems, fmt.Sprintf(
				"no player available for required position: %s (%s)", cfg.PositionName(reqPos), reqPos))
		}
	}

	return problems
}

// resolvePeriods applies the sport default and bounds to a requested period
// count. Zero means "use the default".
func resolvePeriods(cfg SportConfig, requested int) (int, []string) {
	if requested == 0 {
		return cfg.DefaultPeriods, nil
	}
	if requested < cfg.MinPeriods || requested > cfg.MaxPeriods {
		return 0, []string{fmt.Sprintf(
			"num_periods must be between %d and %d, got %d", cfg.MinPeriods, cfg.MaxPeriods, requested)}
	}
	return requested, nil
}

// ValidateLineup checks a generated lineup against a sport's rules and
// returns the list of violations (empty when valid): completeness, required
// positions present, no duplicate players, and every assignment eligible.
func ValidateLineup(cfg SportConfig, lineup types.Lineup) []string {
	var violations []string

	if len(lineup.Assignments) != cfg.TotalPositions {
		violations = append(violations, fmt.Sprintf(
			"incomplete lineup: %d positions filled, need %d", len(lineup.Assignments), cfg.TotalPositions))
	}

	assignedPositions := make(map[string]bool, len(lineup.Assignments))
	for _, a := range lineup.Assignments {
		assignedPositions[a.Position] = true
	}
	for _, reqPos := range cfg.RequiredPositions {
		if !assignedPositions[reqPos] {
			violations = append(violations, fmt.Sprintf(
				"required position not assigned: %s (%s)", cfg.PositionName(reqPos), reqPos))
		}
	}

	seen := make(map[string]bool, len(lineup.Assignments))
	for _, a := range lineup.Assignments {
		if seen[a.Player.ID] {
			violations = append(violations, fmt.Sprintf(
				"player assigned to multiple positions: %s", a.Player.Name))
		}
		seen[a.Player.ID] = true
	}

	for _, a := range lineup.Assignments {
		if _, ok := cfg.GetPosition(a.Position); !ok {
			violations = append(violations, fmt.Sprintf(
				"unknown position in lineup: %s", a.Position))
		}
		if !a.Player.CanPlayPosition(a.Position) {
			violations = append(violations, fmt.Sprintf(
				"player %s cannot play position %s (preferences: %v)",
				a.Player.Name, a.Position, a.Player.PositionPreferences))
		}
	}

	return violations
}

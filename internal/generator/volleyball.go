package generator

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/benchcoach/lineup-service/internal/types"
	"github.com/benchcoach/lineup-service/pkg/logger"
)

// VolleyballGenerator produces one six-player lineup per set. There is no
// rotation-restricted role, so no cross-set eligibility masking is needed.
type VolleyballGenerator struct {
	cfg SportConfig
	log *logrus.Entry
}

// NewVolleyballGenerator creates a volleyball generator with the fixed
// six-slot configuration.
func NewVolleyballGenerator() *VolleyballGenerator {
	return &VolleyballGenerator{
		cfg: VolleyballConfig(),
		log: logger.WithService("lineup-generator").WithField("sport", "volleyball"),
	}
}

// Sport returns "volleyball".
func (g *VolleyballGenerator) Sport() string { return g.cfg.SportID }

// Generate produces one lineup per set.
func (g *VolleyballGenerator) Generate(players []types.Player, gameInfo types.GameInfo) ([]types.Lineup, error) {
	return g.GenerateWithProgress(players, gameInfo, nil)
}

// GenerateWithProgress produces one lineup per set, reporting progress
// after each.
func (g *VolleyballGenerator) GenerateWithProgress(
	players []types.Player,
	gameInfo types.GameInfo,
	progress ProgressFunc,
) ([]types.Lineup, error) {
	if problems := validateGameInfo(gameInfo); len(problems) > 0 {
		return nil, newValidationError("game_info", problems)
	}
	if problems := validatePlayers(g.cfg, players); len(problems) > 0 {
		return nil, newValidationError("players", problems)
	}

	numSets, problems := resolvePeriods(g.cfg, gameInfo.NumPeriods)
	if len(problems) > 0 {
		return nil, newValidationError("game_info", problems)
	}

	positionHistory := map[string][]string{}
	benchTracker := newBenchTracker(players)
	slots := g.requiredSlots()

	lineups := make([]types.Lineup, 0, numSets)
	for set := 1; set <= numSets; set++ {
		mustPlay := mustPlayPlayers(players, benchTracker, set)

		assignments, err := AssignPositionsSmart(players, slots, mustPlay, positionHistory)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", set, err)
		}

		TrackPositionHistory(assignments, positionHistory)

		assigned := make(map[string]bool, len(assignments))
		for _, a := range assignments {
			assigned[a.Player.ID] = true
		}
		var bench []types.Player
		for _, p := range players {
			if !assigned[p.ID] {
				bench = append(bench, p)
			}
		}

		lineup := types.Lineup{
			Period:       set,
			PeriodName:   fmt.Sprintf("Set %d", set),
			Assignments:  assignments,
			BenchPlayers: bench,
			Metadata: map[string]string{
				"game_id": gameInfo.GameID,
				"team_id": gameInfo.TeamID,
			},
		}
		lineups = append(lineups, lineup)
		updateBenchTracker(lineup, players, benchTracker)

		if progress != nil {
			progress(types.ProgressUpdate{
				Type:        "lineup_generation",
				Progress:    float64(set) / float64(numSets),
				Message:     fmt.Sprintf("Generated lineup for %s", lineup.PeriodName),
				CurrentStep: lineup.PeriodName,
				TotalSteps:  numSets,
				Timestamp:   time.Now(),
			})
		}
	}

	g.log.WithFields(logrus.Fields{
		"sets":    numSets,
		"players": len(players),
	}).Debug("Volleyball lineup generation completed")

	return lineups, nil
}

// requiredSlots returns the six on-court slots for one set: one Setter, two
// Outside Hitters, two Middle Blockers, and one Opposite, falling back to
// Libero then Defensive Specialist when the configuration carries no
// Opposite.
func (g *VolleyballGenerator) requiredSlots() []Position {
	slots := make([]Position, 0, g.cfg.TotalPositions)

	if setter, ok := g.cfg.GetPosition("S"); ok {
		slots = append(slots, setter)
	}
	if oh, ok := g.cfg.GetPosition("OH"); ok {
		slots = append(slots, oh, oh)
	}
	if mb, ok := g.cfg.GetPosition("MB"); ok {
		slots = append(slots, mb, mb)
	}

	if opp, ok := g.cfg.GetPosition("OPP"); ok {
		slots = append(slots, opp)
	} else if libero, ok := g.cfg.GetPosition("L"); ok {
		slots = append(slots, libero)
	} else if ds, ok := g.cfg.GetPosition("DS"); ok {
		slots = append(slots, ds)
	}

	return slots
}

package generator

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/benchcoach/lineup-service/internal/types"
	"github.com/benchcoach/lineup-service/pkg/logger"
)

// BaseballGenerator produces one lineup per two-inning period and enforces
// the pitcher rotation rule: nobody pitches two consecutive periods.
type BaseballGenerator struct {
	cfg SportConfig
	log *logrus.Entry
}

// NewBaseballGenerator creates a baseball generator with the fixed
// nine-position configuration.
func NewBaseballGenerator() *BaseballGenerator {
	return &BaseballGenerator{
		cfg: BaseballConfig(),
		log: logger.WithService("lineup-generator").WithField("sport", "baseball"),
	}
}

// Sport returns "baseball".
func (g *BaseballGenerator) Sport() string { return g.cfg.SportID }

// Generate produces one lineup per period.
func (g *BaseballGenerator) Generate(players []types.Player, gameInfo types.GameInfo) ([]types.Lineup, error) {
	return g.GenerateWithProgress(players, gameInfo, nil)
}

// GenerateWithProgress produces one lineup per period, reporting progress
// after each.
func (g *BaseballGenerator) GenerateWithProgress(
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

	numPeriods, problems := resolvePeriods(g.cfg, gameInfo.NumPeriods)
	if len(problems) > 0 {
		return nil, newValidationError("game_info", problems)
	}

	// All cross-period state lives for exactly one Generate call.
	positionHistory := map[string][]string{}
	pitcherHistory := map[string][]int{}
	benchTracker := newBenchTracker(players)

	lineups := make([]types.Lineup, 0, numPeriods)
	for period := 1; period <= numPeriods; period++ {
		lineup, err := g.generatePeriodLineup(period, players, positionHistory, pitcherHistory, benchTracker)
		if err != nil {
			return nil, err
		}
		lineups = append(lineups, lineup)

		TrackPositionHistory(lineup.Assignments, positionHistory)
		g.updatePitcherHistory(lineup, pitcherHistory)
		updateBenchTracker(lineup, players, benchTracker)

		if progress != nil {
			progress(types.ProgressUpdate{
				Type:        "lineup_generation",
				Progress:    float64(period) / float64(numPeriods),
				Message:     fmt.Sprintf("Generated lineup for %s", lineup.PeriodName),
				CurrentStep: lineup.PeriodName,
				TotalSteps:  numPeriods,
				Timestamp:   time.Now(),
			})
		}
	}

	g.log.WithFields(logrus.Fields{
		"periods": numPeriods,
		"players": len(players),
	}).Debug("Baseball lineup generation completed")

	return lineups, nil
}

func (g *BaseballGenerator) generatePeriodLineup(
	period int,
	players []types.Player,
	positionHistory map[string][]string,
	pitcherHistory map[string][]int,
	benchTracker map[string]int,
) (types.Lineup, error) {
	startInning := (period-1)*2 + 1
	endInning := period * 2
	periodName := fmt.Sprintf("Innings %d-%d", startInning, endInning)

	eligiblePitchers := g.eligiblePitchers(players, pitcherHistory, period)
	if len(eligiblePitchers) == 0 {
		return types.Lineup{}, fmt.Errorf(
			"%w: no eligible pitchers for period %d after the consecutive-innings limit",
			ErrInfeasibleLineup, period)
	}

	mustPlay := mustPlayPlayers(players, benchTracker, period)

	// Period-local eligibility view: pitchers excluded by rotation lose "P"
	// for this period only. The canonical Player records never change.
	maskedPlayers := g.maskIneligiblePitchers(players, eligiblePitchers)

	assignments, err := AssignPositionsSmart(maskedPlayers, g.cfg.Positions, mustPlay, positionHistory)
	if err != nil {
		return types.Lineup{}, fmt.Errorf("period %d: %w", period, err)
	}
	if len(assignments) != len(g.cfg.Positions) {
		return types.Lineup{}, fmt.Errorf(
			"%w: period %d filled %d of %d positions",
			ErrInfeasibleLineup, period, len(assignments), len(g.cfg.Positions))
	}

	// Assignments were made against the masked view; the lineup carries the
	// canonical player records.
	byID := make(map[string]types.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for i := range assignments {
		assignments[i].Player = byID[assignments[i].Player.ID]
	}

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

	return types.Lineup{
		Period:       period,
		PeriodName:   periodName,
		Assignments:  assignments,
		BenchPlayers: bench,
	}, nil
}

// eligiblePitchers returns players who can pitch and did not pitch the
// immediately preceding period. Period 1 allows everyone who can pitch.
func (g *BaseballGenerator) eligiblePitchers(
	players []types.Player,
	pitcherHistory map[string][]int,
	currentPeriod int,
) []types.Player {
	var eligible []types.Player
	for _, p := range players {
		if !p.CanPlayPosition("P") {
			continue
		}
		if currentPeriod == 1 {
			eligible = append(eligible, p)
			continue
		}
		pitchedPrevious := false
		for _, pitched := range pitcherHistory[p.ID] {
			if pitched == currentPeriod-1 {
				pitchedPrevious = true
				break
			}
		}
		if !pitchedPrevious {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// maskIneligiblePitchers builds the period-local eligibility view. A player
// excluded from pitching this period has "P" removed from their effective
// preferences; if nothing explicit remains (pitcher-only or any-position
// players), they become eligible for every non-pitching position instead of
// being stranded.
func (g *BaseballGenerator) maskIneligiblePitchers(
	players []types.Player,
	eligiblePitchers []types.Player,
) []types.Player {
	eligibleIDs := make(map[string]bool, len(eligiblePitchers))
	for _, p := range eligiblePitchers {
		eligibleIDs[p.ID] = true
	}

	masked := make([]types.Player, 0, len(players))
	for _, p := range players {
		if !p.CanPlayPosition("P") || eligibleIDs[p.ID] {
			masked = append(masked, p)
			continue
		}

		var prefs []string
		for _, pref := range p.PositionPreferences {
			if pref != "P" {
				prefs = append(prefs, pref)
			}
		}
		if len(prefs) == 0 {
			for _, pos := range g.cfg.Positions {
				if pos.ID != "P" {
					prefs = append(prefs, pos.ID)
				}
			}
		}

		view := p
		view.PositionPreferences = prefs
		masked = append(masked, view)
	}
	return masked
}

func (g *BaseballGenerator) updatePitcherHistory(lineup types.Lineup, pitcherHistory map[string][]int) {
	for _, a := range lineup.Assignments {
		if a.Position == "P" {
			pitcherHistory[a.Player.ID] = append(pitcherHistory[a.Player.ID], lineup.Period)
		}
	}
}

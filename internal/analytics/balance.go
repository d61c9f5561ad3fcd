package analytics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/benchcoach/lineup-service/internal/types"
)

// BuildBalanceReport summarizes playing time across a generated set of
// lineups: how often each player was assigned, broken down by position,
// with summary statistics over the per-player totals. Players who never
// left the bench appear with a zero total.
func BuildBalanceReport(players []types.Player, lineups []types.Lineup) *types.BalanceReport {
	report := &types.BalanceReport{
		PlayerTotals:   make(map[string]int, len(players)),
		PositionCounts: make(map[string]map[string]int, len(players)),
	}

	for _, p := range players {
		report.PlayerTotals[p.ID] = 0
		report.PositionCounts[p.ID] = map[string]int{}
	}

	for _, lineup := range lineups {
		for _, a := range lineup.Assignments {
			report.PlayerTotals[a.Player.ID]++
			if report.PositionCounts[a.Player.ID] == nil {
				report.PositionCounts[a.Player.ID] = map[string]int{}
			}
			report.PositionCounts[a.Player.ID][a.Position]++
		}
	}

	if len(report.PlayerTotals) == 0 {
		return report
	}

	totals := make([]float64, 0, len(report.PlayerTotals))
	first := true
	for _, count := range report.PlayerTotals {
		totals = append(totals, float64(count))
		if first || count < report.MinAssignments {
			report.MinAssignments = count
		}
		if first || count > report.MaxAssignments {
			report.MaxAssignments = count
		}
		first = false
	}

	report.MeanAssignments = stat.Mean(totals, nil)
	if len(totals) > 1 {
		report.StdDevAssignments = stat.StdDev(totals, nil)
	}

	return report
}

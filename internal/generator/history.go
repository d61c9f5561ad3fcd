package generator

import (
	"github.com/benchcoach/lineup-service/internal/types"
)

// Cross-period accumulator state is held in plain maps created at the start
// of each Generate call and discarded at return, keeping generators
// reentrant. Keys are player IDs.

// TrackPositionHistory appends each assignment's position to the player's
// cumulative history. Modifies history in place.
func TrackPositionHistory(assignments []types.PositionAssignment, history map[string][]string) {
	for _, a := range assignments {
		history[a.Player.ID] = append(history[a.Player.ID], a.Position)
	}
}

// CalculatePositionBalance returns, per player, how many times each
// position has been played. Useful for judging whether playing time is
// spread evenly.
func CalculatePositionBalance(history map[string][]string) map[string]map[string]int {
	balance := make(map[string]map[string]int, len(history))
	for playerID, positions := range history {
		counts := make(map[string]int)
		for _, pos := range positions {
			counts[pos]++
		}
		balance[playerID] = counts
	}
	return balance
}

// newBenchTracker seeds consecutive-bench counters for every player.
func newBenchTracker(players []types.Player) map[string]int {
	tracker := make(map[string]int, len(players))
	for _, p := range players {
		tracker[p.ID] = 0
	}
	return tracker
}

// updateBenchTracker resets the counter for everyone assigned this period
// and increments it for everyone benched.
func updateBenchTracker(lineup types.Lineup, players []types.Player, tracker map[string]int) {
	assigned := lineup.AssignedPlayerIDs()
	for _, p := range players {
		if assigned[p.ID] {
			tracker[p.ID] = 0
		} else {
			tracker[p.ID]++
		}
	}
}

// mustPlayPlayers returns players who sat out the previous two consecutive
// periods. The first period never forces anyone.
func mustPlayPlayers(players []types.Player, tracker map[string]int, currentPeriod int) []types.Player {
	if currentPeriod == 1 {
		return nil
	}
	var mustPlay []types.Player
	for _, p := range players {
		if tracker[p.ID] >= 2 {
			mustPlay = append(mustPlay, p)
		}
	}
	return mustPlay
}

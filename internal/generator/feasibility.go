package generator

import (
	"github.com/benchcoach/lineup-service/internal/types"
)

// CanFillAllPositions reports whether every listed position slot can be
// covered by a distinct eligible player. Duplicate position IDs in the list
// are distinct slots, each needing its own player. An empty slot list is
// trivially fillable.
//
// Uses recursive backtracking; exponential worst-case, but rosters are small
// (single teams, at most ~20 players) and this runs as a fast-fail gate and
// inside the assignment lookahead only.
func CanFillAllPositions(players []types.Player, positionIDs []string) bool {
	used := make(map[string]bool, len(players))
	return canFillRemaining(players, positionIDs, used)
}

func canFillRemaining(players []types.Player, positionIDs []string, used map[string]bool) bool {
	if len(positionIDs) == 0 {
		return true
	}

	positionID := positionIDs[0]
	remaining := positionIDs[1:]

	for _, player := range players {
		if used[player.ID] {
			continue
		}
		if !player.CanPlayPosition(positionID) {
			continue
		}

		used[player.ID] = true
		if canFillRemaining(players, remaining, used) {
			return true
		}
		delete(used, player.ID)
	}

	return false
}

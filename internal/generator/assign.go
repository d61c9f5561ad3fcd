package generator

import (
	"fmt"
	"sort"

	"github.com/benchcoach/lineup-service/internal/types"
)

// anyPositionFlexibility is the sort sentinel for players with an empty
// preference set: they are treated as maximally flexible so specialists are
// placed on their positions before generalists are spent there.
const anyPositionFlexibility = 99

// AssignPositionsSmart assigns one distinct player to every slot for a
// single period, or returns ErrInfeasibleLineup when no complete assignment
// exists.
//
// Slot order is scarcity-ascending (fewest eligible candidates first).
// Within a slot, candidates are ranked by (times already played this
// position, flexibility), with must-play players always winning over the
// rest. Before committing a candidate, a one-ply lookahead confirms the
// remaining slots are still fillable; if no candidate passes, the top-ranked
// candidate is used anyway, since the up-front feasibility gate has already
// proven a complete solution exists.
func AssignPositionsSmart(
	availablePlayers []types.Player,
	slots []Position,
	mustPlayPlayers []types.Player,
	positionHistory map[string][]string,
) ([]types.PositionAssignment, error) {
	if positionHistory == nil {
		positionHistory = map[string][]string{}
	}

	slotIDs := make([]string, len(slots))
	for i, slot := range slots {
		slotIDs[i] = slot.ID
	}

	if !CanFillAllPositions(availablePlayers, slotIDs) {
		return nil, fmt.Errorf("%w: need %d positions, have %d players",
			ErrInfeasibleLineup, len(slotIDs), len(availablePlayers))
	}

	mustPlayIDs := make(map[string]bool, len(mustPlayPlayers))
	for _, p := range mustPlayPlayers {
		mustPlayIDs[p.ID] = true
	}

	orderedSlots := orderSlotsByScarcity(slots, availablePlayers)

	assignments := make([]types.PositionAssignment, 0, len(slots))
	remaining := make([]types.Player, len(availablePlayers))
	copy(remaining, availablePlayers)

	for i, slot := range orderedSlots {
		candidates := candidatesForPosition(slot.ID, remaining)
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: no candidates for position %s (%s), %d players remaining",
				ErrInfeasibleLineup, slot.Name, slot.ID, len(remaining))
		}

		// Must-play players always win against the rest; multiple
		// must-play candidates are still ranked below.
		if restricted := filterMustPlay(candidates, mustPlayIDs); len(restricted) > 0 {
			candidates = restricted
		}

		sortCandidates(candidates, slot.ID, positionHistory)

		// Slots after this one in scarcity order still need filling.
		remainingSlotIDs := make([]string, 0, len(orderedSlots)-i-1)
		for _, later := range orderedSlots[i+1:] {
			remainingSlotIDs = append(remainingSlotIDs, later.ID)
		}

		chosen, ok := firstNonBlockingCandidate(candidates, remaining, remainingSlotIDs)
		if !ok {
			// Every candidate looks like it strands a later slot; take the
			// top-ranked one anyway. The global gate above guarantees a
			// complete assignment still exists.
			chosen = candidates[0]
		}

		assignments = append(assignments, types.PositionAssignment{
			Player:   chosen,
			Position: slot.ID,
		})
		remaining = removePlayer(remaining, chosen.ID)
	}

	return assignments, nil
}

func orderSlotsByScarcity(slots []Position, players []types.Player) []Position {
	ordered := make([]Position, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return countCandidates(ordered[i].ID, players) < countCandidates(ordered[j].ID, players)
	})
	return ordered
}

func countCandidates(positionID string, players []types.Player) int {
	count := 0
	for _, p := range players {
		if p.CanPlayPosition(positionID) {
			count++
		}
	}
	return count
}

func candidatesForPosition(positionID string, players []types.Player) []types.Player {
	candidates := make([]types.Player, 0, len(players))
	for _, p := range players {
		if p.CanPlayPosition(positionID) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

func filterMustPlay(candidates []types.Player, mustPlayIDs map[string]bool) []types.Player {
	restricted := make([]types.Player, 0, len(candidates))
	for _, p := range candidates {
		if mustPlayIDs[p.ID] {
			restricted = append(restricted, p)
		}
	}
	return restricted
}

// sortCandidates ranks by times the player has already played this position
// (spread playing time), then by flexibility (specialists before
// generalists).
func sortCandidates(candidates []types.Player, positionID string, positionHistory map[string][]string) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ci := timesPlayed(positionHistory, candidates[i].ID, positionID)
		cj := timesPlayed(positionHistory, candidates[j].ID, positionID)
		if ci != cj {
			return ci < cj
		}
		return flexibility(candidates[i]) < flexibility(candidates[j])
	})
}

func timesPlayed(positionHistory map[string][]string, playerID, positionID string) int {
	count := 0
	for _, pos := range positionHistory[playerID] {
		if pos == positionID {
			count++
		}
	}
	return count
}

func flexibility(p types.Player) int {
	if len(p.PositionPreferences) == 0 {
		return anyPositionFlexibility
	}
	return len(p.PositionPreferences)
}

// firstNonBlockingCandidate walks the ranked candidates and returns the
// first whose removal still leaves every remaining slot fillable.
func firstNonBlockingCandidate(
	candidates []types.Player,
	remaining []types.Player,
	remainingSlotIDs []string,
) (types.Player, bool) {
	for _, candidate := range candidates {
		if len(remainingSlotIDs) == 0 {
			return candidate, true
		}
		rest := removePlayer(remaining, candidate.ID)
		if CanFillAllPositions(rest, remainingSlotIDs) {
			return candidate, true
		}
	}
	return types.Player{}, false
}

func removePlayer(players []types.Player, playerID string) []types.Player {
	out := make([]types.Player, 0, len(players))
	for _, p := range players {
		if p.ID != playerID {
			out = append(out, p)
		}
	}
	return out
}

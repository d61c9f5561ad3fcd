package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benchcoach/lineup-service/internal/types"
)

func makePlayer(id, name string, prefs ...string) types.Player {
	return types.Player{ID: id, Name: name, PositionPreferences: prefs}
}

func TestCanFillAllPositions_EmptyPositionList(t *testing.T) {
	assert.True(t, CanFillAllPositions(nil, nil), "no positions is trivially fillable")
	assert.True(t, CanFillAllPositions([]types.Player{makePlayer("1", "A")}, nil))
}

func TestCanFillAllPositions_Basic(t *testing.T) {
	players := []types.Player{
		makePlayer("1", "Pitcher", "P"),
		makePlayer("2", "Catcher", "C"),
		makePlayer("3", "Utility"),
	}

	assert.True(t, CanFillAllPositions(players, []string{"P", "C"}))
	assert.True(t, CanFillAllPositions(players, []string{"P", "C", "1B"}))
	assert.False(t, CanFillAllPositions(players, []string{"P", "C", "1B", "2B"}),
		"four slots cannot be covered by three players")
}

func TestCanFillAllPositions_RequiresBacktracking(t *testing.T) {
	// The generalist must not be spent on P, or C goes unfilled. A greedy
	// first-fit in roster order would assign the utility player to P first.
	players := []types.Player{
		makePlayer("1", "Utility"),
		makePlayer("2", "Pitcher", "P"),
	}
	assert.True(t, CanFillAllPositions(players, []string{"P", "C"}))
}

func TestCanFillAllPositions_DuplicateSlots(t *testing.T) {
	// Two OH slots need two distinct hitters.
	oneHitter := []types.Player{
		makePlayer("1", "Hitter", "OH"),
		makePlayer("2", "Setter", "S"),
	}
	assert.False(t, CanFillAllPositions(oneHitter, []string{"OH", "OH"}))

	twoHitters := append(oneHitter, makePlayer("3", "Second Hitter", "OH"))
	assert.True(t, CanFillAllPositions(twoHitters, []string{"OH", "OH"}))
}

func TestCanFillAllPositions_NoEligiblePlayer(t *testing.T) {
	players := []types.Player{
		makePlayer("1", "Catcher", "C"),
		makePlayer("2", "First Base", "1B"),
	}
	assert.False(t, CanFillAllPositions(players, []string{"P"}))
}

// bruteForceFillable exhaustively tries every ordered selection of distinct
// players for the slot list. It is the correctness oracle for the
// backtracking checker on small fixtures.
func bruteForceFillable(players []types.Player, positionIDs []string, used map[string]bool) bool {
	if len(positionIDs) == 0 {
		return true
	}
	for _, p := range players {
		if used[p.ID] || !p.CanPlayPosition(positionIDs[0]) {
			continue
		}
		used[p.ID] = true
		if bruteForceFillable(players, positionIDs[1:], used) {
			delete(used, p.ID)
			return true
		}
		delete(used, p.ID)
	}
	return false
}

func TestCanFillAllPositions_MatchesBruteForce(t *testing.T) {
	positions := []string{"P", "C", "1B"}

	// Enumerate every eligibility combination for three players over three
	// positions (each player eligible for a subset, empty = anywhere).
	prefSets := [][]string{
		{},
		{"P"},
		{"C"},
		{"1B"},
		{"P", "C"},
		{"C", "1B"},
	}

	for i, a := range prefSets {
		for j, b := range prefSets {
			for k, c := range prefSets {
				players := []types.Player{
					makePlayer("1", "A", a...),
					makePlayer("2", "B", b...),
					makePlayer("3", "C", c...),
				}
				want := bruteForceFillable(players, positions, map[string]bool{})
				got := CanFillAllPositions(players, positions)
				assert.Equal(t, want, got,
					fmt.Sprintf("prefs %v/%v/%v (case %d-%d-%d)", a, b, c, i, j, k))
			}
		}
	}
}

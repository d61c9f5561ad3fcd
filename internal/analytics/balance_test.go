package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchcoach/lineup-service/internal/types"
)

func player(id, name string) types.Player {
	return types.Player{ID: id, Name: name}
}

func assignment(p types.Player, position string) types.PositionAssignment {
	return types.PositionAssignment{Player: p, Position: position}
}

func TestBuildBalanceReport_CountsAssignments(t *testing.T) {
	alice := player("p1", "Alice")
	bob := player("p2", "Bob")
	cara := player("p3", "Cara")
	players := []types.Player{alice, bob, cara}

	lineups := []types.Lineup{
		{Period: 1, Assignments: []types.PositionAssignment{
			assignment(alice, "P"),
			assignment(bob, "C"),
		}},
		{Period: 2, Assignments: []types.PositionAssignment{
			assignment(alice, "1B"),
			assignment(bob, "C"),
		}},
	}

	report := BuildBalanceReport(players, lineups)
	require.NotNil(t, report)

	assert.Equal(t, 2, report.PlayerTotals["p1"])
	assert.Equal(t, 2, report.PlayerTotals["p2"])
	assert.Equal(t, 0, report.PlayerTotals["p3"], "benched players still appear in the report")

	assert.Equal(t, 1, report.PositionCounts["p1"]["P"])
	assert.Equal(t, 1, report.PositionCounts["p1"]["1B"])
	assert.Equal(t, 2, report.PositionCounts["p2"]["C"])

	assert.Equal(t, 0, report.MinAssignments)
	assert.Equal(t, 2, report.MaxAssignments)
	assert.InDelta(t, 4.0/3.0, report.MeanAssignments, 1e-9)
	assert.Greater(t, report.StdDevAssignments, 0.0)
}

func TestBuildBalanceReport_UniformAssignments(t *testing.T) {
	alice := player("p1", "Alice")
	bob := player("p2", "Bob")
	players := []types.Player{alice, bob}

	lineups := []types.Lineup{
		{Period: 1, Assignments: []types.PositionAssignment{
			assignment(alice, "S"),
			assignment(bob, "OH"),
		}},
	}

	report := BuildBalanceReport(players, lineups)
	assert.Equal(t, 1, report.MinAssignments)
	assert.Equal(t, 1, report.MaxAssignments)
	assert.InDelta(t, 1.0, report.MeanAssignments, 1e-9)
	assert.InDelta(t, 0.0, report.StdDevAssignments, 1e-9)
}

func TestBuildBalanceReport_EmptyInputs(t *testing.T) {
	report := BuildBalanceReport(nil, nil)
	require.NotNil(t, report)
	assert.Empty(t, report.PlayerTotals)
	assert.Zero(t, report.MeanAssignments)
}

func TestBuildBalanceReport_SinglePlayer(t *testing.T) {
	solo := player("p1", "Solo")
	lineups := []types.Lineup{
		{Period: 1, Assignments: []types.PositionAssignment{assignment(solo, "P")}},
	}

	report := BuildBalanceReport([]types.Player{solo}, lineups)
	assert.Equal(t, 1, report.PlayerTotals["p1"])
	assert.Zero(t, report.StdDevAssignments, "stddev is undefined for one sample")
}

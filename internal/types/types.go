package types

import (
	"time"
)

// Player represents a roster player and the positions they are restricted to.
// An empty PositionPreferences slice means the player is eligible for any
// position; it is not an unset default.
type Player struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	PositionPreferences []string          `json:"position_preferences"`
	JerseyNumber        *int              `json:"jersey_number,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

// CanPlayPosition reports whether the player is eligible for a position.
func (p Player) CanPlayPosition(positionID string) bool {
	if len(p.PositionPreferences) == 0 {
		return true
	}
	for _, pref := range p.PositionPreferences {
		if pref == positionID {
			return true
		}
	}
	return false
}

// HasPreferenceFor reports whether the player explicitly listed a position.
func (p Player) HasPreferenceFor(positionID string) bool {
	for _, pref := range p.PositionPreferences {
		if pref == positionID {
			return true
		}
	}
	return false
}

// PositionAssignment pairs one player with one position for one period.
type PositionAssignment struct {
	Player       Player `json:"player"`
	Position     string `json:"position"`
	BattingOrder *int   `json:"batting_order,omitempty"`
	IsCaptain    bool   `json:"is_captain,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Lineup is one period's complete assignment set plus the bench.
type Lineup struct {
	Period       int                  `json:"period"`
	PeriodName   string               `json:"period_name"`
	Assignments  []PositionAssignment `json:"assignments"`
	BenchPlayers []Player             `json:"bench_players"`
	Metadata     map[string]string    `json:"metadata,omitempty"`
}

// AssignedPlayerIDs returns the set of player IDs assigned this period.
func (l Lineup) AssignedPlayerIDs() map[string]bool {
	ids := make(map[string]bool, len(l.Assignments))
	for _, a := range l.Assignments {
		ids[a.Player.ID] = true
	}
	return ids
}

// GetAssignment returns the assignment for a position, or nil if unfilled.
func (l Lineup) GetAssignment(positionID string) *PositionAssignment {
	for i := range l.Assignments {
		if l.Assignments[i].Position == positionID {
			return &l.Assignments[i]
		}
	}
	return nil
}

// GameInfo is the game metadata supplied by the caller. GameID and TeamID
// are boundary-contract fields validated for presence; the engine itself
// only consumes NumPeriods.
type GameInfo struct {
	GameID     string `json:"game_id"`
	TeamID     string `json:"team_id"`
	NumPeriods int    `json:"num_periods,omitempty"`
}

// BalanceReport summarizes playing-time fairness across a generated set of
// lineups.
type BalanceReport struct {
	PlayerTotals      map[string]int            `json:"player_totals"`
	PositionCounts    map[string]map[string]int `json:"position_counts"`
	MeanAssignments   float64                   `json:"mean_assignments"`
	StdDevAssignments float64                   `json:"stddev_assignments"`
	MinAssignments    int                       `json:"min_assignments"`
	MaxAssignments    int                       `json:"max_assignments"`
}

// GenerateLineupsRequest is the payload for lineup generation.
type GenerateLineupsRequest struct {
	Sport    string   `json:"sport" binding:"required"`
	Players  []Player `json:"players" binding:"required"`
	GameInfo GameInfo `json:"game_info"`
}

// GenerateLineupsResponse carries the generated lineups back to the caller.
type GenerateLineupsResponse struct {
	GenerationID string         `json:"generation_id"`
	Sport        string         `json:"sport"`
	Lineups      []Lineup       `json:"lineups"`
	Balance      *BalanceReport `json:"balance,omitempty"`
}

// ValidateLineupRequest asks for a rules check of a single lineup.
type ValidateLineupRequest struct {
	Sport  string `json:"sport" binding:"required"`
	Lineup Lineup `json:"lineup" binding:"required"`
}

// ValidateLineupResponse lists the rule violations found (empty when valid).
type ValidateLineupResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthStatus represents the health status of the service.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ProgressUpdate is a per-period progress message for websocket clients.
type ProgressUpdate struct {
	Type        string    `json:"type"`
	Progress    float64   `json:"progress"`
	Message     string    `json:"message"`
	CurrentStep string    `json:"current_step"`
	TotalSteps  int       `json:"total_steps"`
	Timestamp   time.Time `json:"timestamp"`
}

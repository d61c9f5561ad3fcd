package generator

// Position represents a named role in a sport's fixed configuration.
type Position struct {
	ID           string
	Name         string
	Abbrev       string
	Required     bool
	MaxPerLineup int // 0 means one per lineup
}

// SportConfig holds the fixed position set and game-structure rules for a
// sport. Configurations are compiled in; they are not derived at runtime.
type SportConfig struct {
	SportID           string
	DisplayName       string
	Positions         []Position
	TotalPositions    int
	RequiredPositions []string
	DefaultPeriods    int
	MinPeriods        int
	MaxPeriods        int
	PeriodLabel       string // "Innings", "Set"
}

// GetPosition returns the position with the given ID.
func (c SportConfig) GetPosition(positionID string) (Position, bool) {
	for _, p := range c.Positions {
		if p.ID == positionID {
			return p, true
		}
	}
	return Position{}, false
}

// PositionIDs returns the IDs of every configured position, in order.
func (c SportConfig) PositionIDs() []string {
	ids := make([]string, len(c.Positions))
	for i, p := range c.Positions {
		ids[i] = p.ID
	}
	return ids
}

// PositionName returns the display name for a position ID, falling back to
// the ID itself for unknown positions.
func (c SportConfig) PositionName(positionID string) string {
	if p, ok := c.GetPosition(positionID); ok {
		return p.Name
	}
	return positionID
}

// BaseballConfig returns the fixed baseball configuration: nine fielding
// positions, one lineup per two-inning period, three periods by default.
func BaseballConfig() SportConfig {
	return SportConfig{
		SportID:     "baseball",
		DisplayName: "Baseball",
		Positions: []Position{
			{ID: "P", Name: "Pitcher", Abbrev: "P", Required: true},
			{ID: "C", Name: "Catcher", Abbrev: "C", Required: true},
			{ID: "1B", Name: "First Base", Abbrev: "1B"},
			{ID: "2B", Name: "Second Base", Abbrev: "2B"},
			{ID: "3B", Name: "Third Base", Abbrev: "3B"},
			{ID: "SS", Name: "Shortstop", Abbrev: "SS"},
			{ID: "LF", Name: "Left Field", Abbrev: "LF"},
			{ID: "CF", Name: "Center Field", Abbrev: "CF"},
			{ID: "RF", Name: "Right Field", Abbrev: "RF"},
		},
		TotalPositions:    9,
		RequiredPositions: []string{"P", "C"},
		DefaultPeriods:    3,
		MinPeriods:        1,
		MaxPeriods:        9,
		PeriodLabel:       "Innings",
	}
}

// VolleyballConfig returns the fixed volleyball configuration: six on-court
// slots per set, three sets by default, three to five allowed.
func VolleyballConfig() SportConfig {
	return SportConfig{
		SportID:     "volleyball",
		DisplayName: "Volleyball",
		Positions: []Position{
			{ID: "S", Name: "Setter", Abbrev: "S", Required: true},
			{ID: "OH", Name: "Outside Hitter", Abbrev: "OH", MaxPerLineup: 2},
			{ID: "MB", Name: "Middle Blocker", Abbrev: "MB", MaxPerLineup: 2},
			{ID: "OPP", Name: "Opposite", Abbrev: "OPP"},
			{ID: "L", Name: "Libero", Abbrev: "L"},
			{ID: "DS", Name: "Defensive Specialist", Abbrev: "DS"},
		},
		TotalPositions:    6,
		RequiredPositions: []string{"S"},
		DefaultPeriods:    3,
		MinPeriods:        3,
		MaxPeriods:        5,
		PeriodLabel:       "Set",
	}
}

// SportConfigFor returns the configuration for a supported sport ID.
func SportConfigFor(sportID string) (SportConfig, error) {
	switch normalizeSportID(sportID) {
	case "baseball":
		return BaseballConfig(), nil
	case "volleyball":
		return VolleyballConfig(), nil
	default:
		return SportConfig{}, errUnknownSport(sportID)
	}
}

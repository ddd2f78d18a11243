package models

type League struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"totalRosters"`
}

// TeamSelection is the acting user's team in one league plus its inclusion flag.
type TeamSelection struct {
	LeagueID   string `json:"leagueId"`
	LeagueName string `json:"leagueName"`
	RosterID   string `json:"rosterId"`
	Selected   bool   `json:"selected"`
}

// DisplayName falls back to the league id when the name is blank.
func (s TeamSelection) DisplayName() string {
	if s.LeagueName != "" {
		return s.LeagueName
	}
	return s.LeagueID
}

// RosterSnapshot holds every player on a roster. Starters is a subset of Players.
type RosterSnapshot struct {
	RosterID string   `json:"rosterId"`
	OwnerID  string   `json:"ownerId"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
}

// MatchupSnapshot is one roster's lineup for the week. MatchupID 0 means unpaired.
type MatchupSnapshot struct {
	RosterID  string   `json:"rosterId"`
	MatchupID int      `json:"matchupId"`
	Starters  []string `json:"starters"`
	Points    float64  `json:"points"`
}

// AnalysisInput is the immutable snapshot every analysis runs against.
type AnalysisInput struct {
	UserID     string                       `json:"userId"`
	Week       int                          `json:"week"`
	Selections []TeamSelection              `json:"selections"`
	Leagues    []League                     `json:"leagues"`
	Rosters    map[string][]RosterSnapshot  `json:"rosters"`
	Matchups   map[string][]MatchupSnapshot `json:"matchups"`
}

// SelectedTeams returns the selections with the inclusion flag set, in input order.
func (in *AnalysisInput) SelectedTeams() []TeamSelection {
	if in == nil {
		return nil
	}
	selected := make([]TeamSelection, 0, len(in.Selections))
	for _, s := range in.Selections {
		if s.Selected {
			selected = append(selected, s)
		}
	}
	return selected
}

// WithSelections returns a shallow copy carrying its own selection slice.
func (in *AnalysisInput) WithSelections(selections []TeamSelection) *AnalysisInput {
	if in == nil {
		return nil
	}
	out := *in
	out.Selections = append([]TeamSelection(nil), selections...)
	return &out
}

const (
	UnknownPlayerName = "Unknown Player"
	UnknownPosition   = "Unknown"
	FreeAgentTeam     = "FA"
)

type PlayerInfo struct {
	ID       string `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

// FallbackPlayer is what an unknown player id resolves to.
func FallbackPlayer(id string) PlayerInfo {
	return PlayerInfo{
		ID:       id,
		Name:     UnknownPlayerName,
		Position: UnknownPosition,
		Team:     FreeAgentTeam,
	}
}

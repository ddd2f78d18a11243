package models

// SnapshotResponse is the document the input assembler writes for one user and week.
type SnapshotResponse struct {
	UserID   string                       `json:"user_id"`
	Week     int                          `json:"week"`
	Leagues  []LeagueResponse             `json:"leagues"`
	Rosters  map[string][]RosterResponse  `json:"rosters"`
	Matchups map[string][]MatchupResponse `json:"matchups"`
}

type LeagueResponse struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
}

type RosterResponse struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	CoOwners []string `json:"co_owners"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Taxi     []string `json:"taxi"`
	Reserve  []string `json:"reserve"`
}

type MatchupResponse struct {
	RosterID  int      `json:"roster_id"`
	MatchupID *int     `json:"matchup_id"`
	Starters  []string `json:"starters"`
	Players   []string `json:"players"`
	Points    float64  `json:"points"`
}

type PlayerResponse struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             *string  `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status"`
}

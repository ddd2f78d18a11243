package models

import "fmt"

type PlayerAllegiance struct {
	PlayerInfo
	Count   int      `json:"count"`
	Leagues []string `json:"leagues"`
}

type PlayerExposure struct {
	PlayerInfo
	ExposurePercentage float64  `json:"exposurePercentage"`
	TeamCount          int      `json:"teamCount"`
	TotalTeams         int      `json:"totalTeams"`
	Leagues            []string `json:"leagues"`
}

type GamedayData struct {
	Week            int                `json:"week"`
	CheeringFor     []PlayerAllegiance `json:"cheeringFor"`
	CheeringAgainst []PlayerAllegiance `json:"cheeringAgainst"`
	Selections      []TeamSelection    `json:"selections"`
}

type ExposureData struct {
	Players    []PlayerExposure `json:"players"`
	TotalTeams int              `json:"totalTeams"`
}

// PlayerLeagues is the payload behind a clicked player count.
type PlayerLeagues struct {
	PlayerInfo
	CheeringFor     []string `json:"cheeringFor"`
	CheeringAgainst []string `json:"cheeringAgainst"`
	Exposure        []string `json:"exposure"`
}

type DisplayMode int

const (
	DisplayCount DisplayMode = iota
	DisplayPercentage
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayCount:
		return "count"
	case DisplayPercentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// TableRow is one rendered player line. Which of Count or Percentage is shown
// is decided by the owning table's Mode.
type TableRow struct {
	PlayerInfo
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	Leagues    []string `json:"leagues"`
}

type PlayerTable struct {
	Title string      `json:"title"`
	Mode  DisplayMode `json:"mode"`
	Rows  []TableRow  `json:"rows"`
}

// Value is the row's figure formatted for the table mode.
func (t PlayerTable) Value(row TableRow) string {
	if t.Mode == DisplayPercentage {
		return fmt.Sprintf("%.1f%%", row.Percentage)
	}
	return fmt.Sprintf("%d", row.Count)
}

func (d GamedayData) Tables() []PlayerTable {
	return []PlayerTable{
		allegianceTable("Cheering For", d.CheeringFor),
		allegianceTable("Cheering Against", d.CheeringAgainst),
	}
}

func allegianceTable(title string, players []PlayerAllegiance) PlayerTable {
	rows := make([]TableRow, len(players))
	for i, p := range players {
		rows[i] = TableRow{PlayerInfo: p.PlayerInfo, Count: p.Count, Leagues: p.Leagues}
	}
	return PlayerTable{Title: title, Mode: DisplayCount, Rows: rows}
}

func (d ExposureData) Table() PlayerTable {
	rows := make([]TableRow, len(d.Players))
	for i, p := range d.Players {
		rows[i] = TableRow{
			PlayerInfo: p.PlayerInfo,
			Count:      p.TeamCount,
			Percentage: p.ExposurePercentage,
			Leagues:    p.Leagues,
		}
	}
	return PlayerTable{Title: "Exposure", Mode: DisplayPercentage, Rows: rows}
}

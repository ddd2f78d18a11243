package analysis

import (
	"fmt"

	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

const (
	MsgUserIDRequired  = "User ID is required"
	MsgNoSelections    = "No team selections available"
	MsgNoLeagues       = "No leagues available"
	MsgNoTeamSelected  = "At least one team must be selected"
	msgMissingRosters  = "Missing roster data for league: %s"
	msgMissingMatchups = "Missing matchup data for league: %s"
)

// Validate reports every structural problem with in. An empty result means the
// snapshot is usable. A user roster missing from present league data is not a
// problem here; the calculators skip it.
func Validate(in *models.AnalysisInput) []string {
	if in == nil {
		return []string{MsgUserIDRequired, MsgNoSelections, MsgNoLeagues, MsgNoTeamSelected}
	}

	var errs []string
	if in.UserID == "" {
		errs = append(errs, MsgUserIDRequired)
	}
	if len(in.Selections) == 0 {
		errs = append(errs, MsgNoSelections)
	}
	if len(in.Leagues) == 0 {
		errs = append(errs, MsgNoLeagues)
	}

	selected := in.SelectedTeams()
	if len(selected) == 0 {
		errs = append(errs, MsgNoTeamSelected)
	}

	for _, team := range selected {
		if rosters, ok := in.Rosters[team.LeagueID]; !ok || rosters == nil {
			errs = append(errs, fmt.Sprintf(msgMissingRosters, team.DisplayName()))
		}
		if matchups, ok := in.Matchups[team.LeagueID]; !ok || matchups == nil {
			errs = append(errs, fmt.Sprintf(msgMissingMatchups, team.DisplayName()))
		}
	}

	return errs
}

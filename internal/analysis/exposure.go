package analysis

import (
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

// ComputeExposure reports, per player, the share of selected teams carrying the
// player anywhere on the roster (starters, bench, taxi, reserve). The
// denominator is the number of selected teams, including teams whose roster
// could not be found.
func (e *Engine) ComputeExposure(in *models.AnalysisInput) models.ExposureData {
	data := models.ExposureData{Players: []models.PlayerExposure{}}

	selected := in.SelectedTeams()
	if len(selected) == 0 {
		return data
	}
	data.TotalTeams = len(selected)

	counts := newPlayerCounter()
	for _, team := range selected {
		league := team.DisplayName()
		roster, ok := findRoster(in.Rosters[team.LeagueID], team.RosterID)
		if !ok {
			e.logger.Warn("No roster found for user, skipping league",
				"league_id", team.LeagueID, "league", league, "roster_id", team.RosterID)
			continue
		}
		counts.addTeam(roster.Players, league)
	}

	rows := make([]models.PlayerExposure, 0, counts.len())
	counts.each(func(pc *playerCount) {
		rows = append(rows, models.PlayerExposure{
			PlayerInfo:         e.resolve(pc.id),
			ExposurePercentage: exposurePercentage(pc.count, data.TotalTeams),
			TeamCount:          pc.count,
			TotalTeams:         data.TotalTeams,
			Leagues:            append([]string(nil), pc.leagues...),
		})
	})
	rankExposure(rows)
	data.Players = rows

	e.logger.Debug("Computed exposure", "teams", data.TotalTeams, "players", len(rows))
	return data
}

func exposurePercentage(teamCount, totalTeams int) float64 {
	if totalTeams <= 0 {
		return 0
	}
	return 100 * float64(teamCount) / float64(totalTeams)
}

func findRoster(rosters []models.RosterSnapshot, rosterID string) (models.RosterSnapshot, bool) {
	for _, r := range rosters {
		if r.RosterID == rosterID {
			return r, true
		}
	}
	return models.RosterSnapshot{}, false
}

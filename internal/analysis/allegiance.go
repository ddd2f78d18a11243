package analysis

import (
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

// ComputeAllegiance counts, per player, the selected leagues where the player
// starts for the user (cheering for) and for the user's opponent (cheering
// against). A player may appear in both tables; each table keeps its own count.
// Leagues without a user or opponent matchup are skipped with a warning.
func (e *Engine) ComputeAllegiance(in *models.AnalysisInput) models.GamedayData {
	data := models.GamedayData{
		CheeringFor:     []models.PlayerAllegiance{},
		CheeringAgainst: []models.PlayerAllegiance{},
	}
	if in == nil {
		return data
	}
	data.Week = in.Week
	data.Selections = append([]models.TeamSelection{}, in.Selections...)

	userCounts := newPlayerCounter()
	opponentCounts := newPlayerCounter()

	for _, team := range in.SelectedTeams() {
		league := team.DisplayName()
		matchups := in.Matchups[team.LeagueID]

		userMatchup, ok := findUserMatchup(matchups, team.RosterID)
		if !ok {
			e.logger.Warn("No matchup found for user roster, skipping league",
				"league_id", team.LeagueID, "league", league, "roster_id", team.RosterID, "week", in.Week)
			continue
		}
		userCounts.addTeam(userMatchup.Starters, league)

		opponent, ok := findOpponentMatchup(matchups, userMatchup)
		if !ok {
			e.logger.Warn("No opponent matchup found, skipping opponent",
				"league_id", team.LeagueID, "league", league, "roster_id", team.RosterID,
				"matchup_id", userMatchup.MatchupID, "week", in.Week)
			continue
		}
		opponentCounts.addTeam(opponent.Starters, league)
	}

	data.CheeringFor = e.allegianceRows(userCounts)
	data.CheeringAgainst = e.allegianceRows(opponentCounts)

	e.logger.Debug("Computed gameday allegiance",
		"week", in.Week, "cheering_for", len(data.CheeringFor), "cheering_against", len(data.CheeringAgainst))
	return data
}

func (e *Engine) allegianceRows(counts *playerCounter) []models.PlayerAllegiance {
	rows := make([]models.PlayerAllegiance, 0, counts.len())
	counts.each(func(pc *playerCount) {
		rows = append(rows, models.PlayerAllegiance{
			PlayerInfo: e.resolve(pc.id),
			Count:      pc.count,
			Leagues:    append([]string(nil), pc.leagues...),
		})
	})
	rankAllegiance(rows)
	return rows
}

func findUserMatchup(matchups []models.MatchupSnapshot, rosterID string) (models.MatchupSnapshot, bool) {
	for _, m := range matchups {
		if m.RosterID == rosterID {
			return m, true
		}
	}
	return models.MatchupSnapshot{}, false
}

// findOpponentMatchup returns the other roster sharing the user's matchup id.
// Unpaired matchups (id 0) never have an opponent.
func findOpponentMatchup(matchups []models.MatchupSnapshot, user models.MatchupSnapshot) (models.MatchupSnapshot, bool) {
	if user.MatchupID == 0 {
		return models.MatchupSnapshot{}, false
	}
	for _, m := range matchups {
		if m.MatchupID == user.MatchupID && m.RosterID != user.RosterID {
			return m, true
		}
	}
	return models.MatchupSnapshot{}, false
}

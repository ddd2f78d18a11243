package snapshot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
)

type API struct {
	client *Client
	logger *logging.Logger
}

func NewAPI(client *Client, logger *logging.Logger) *API {
	if logger == nil {
		logger = logging.Default()
	}
	return &API{client: client, logger: logger}
}

// GetAnalysisInput loads the snapshot and assembles the analysis input.
func (a *API) GetAnalysisInput(ctx context.Context) (*models.AnalysisInput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp models.SnapshotResponse
	if err := a.client.Get(&resp); err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}

	return a.assemble(resp), nil
}

func (a *API) assemble(resp models.SnapshotResponse) *models.AnalysisInput {
	in := &models.AnalysisInput{
		UserID:     resp.UserID,
		Week:       resp.Week,
		Leagues:    make([]models.League, 0, len(resp.Leagues)),
		Selections: make([]models.TeamSelection, 0, len(resp.Leagues)),
		Rosters:    make(map[string][]models.RosterSnapshot, len(resp.Rosters)),
		Matchups:   make(map[string][]models.MatchupSnapshot, len(resp.Matchups)),
	}

	for leagueID, rosters := range resp.Rosters {
		if rosters == nil {
			continue
		}
		converted := make([]models.RosterSnapshot, len(rosters))
		for i, r := range rosters {
			converted[i] = convertRoster(r)
		}
		in.Rosters[leagueID] = converted
	}

	for leagueID, matchups := range resp.Matchups {
		if matchups == nil {
			continue
		}
		converted := make([]models.MatchupSnapshot, len(matchups))
		for i, m := range matchups {
			converted[i] = convertMatchup(m)
		}
		in.Matchups[leagueID] = converted
	}

	for _, league := range resp.Leagues {
		in.Leagues = append(in.Leagues, models.League{
			ID:           league.LeagueID,
			Name:         league.Name,
			Season:       league.Season,
			Status:       league.Status,
			TotalRosters: league.TotalRosters,
		})

		roster, ok := userRoster(resp.Rosters[league.LeagueID], resp.UserID)
		if !ok {
			a.logger.Warn("User has no roster in league, leaving it out of selections",
				"league_id", league.LeagueID, "league", league.Name, "user_id", resp.UserID)
			continue
		}
		in.Selections = append(in.Selections, models.TeamSelection{
			LeagueID:   league.LeagueID,
			LeagueName: league.Name,
			RosterID:   rosterID(roster.RosterID),
			Selected:   true,
		})
	}

	a.logger.Info("Assembled analysis input",
		"user_id", in.UserID, "week", in.Week, "leagues", len(in.Leagues), "selections", len(in.Selections))
	return in
}

func userRoster(rosters []models.RosterResponse, userID string) (models.RosterResponse, bool) {
	if userID == "" {
		return models.RosterResponse{}, false
	}
	for _, r := range rosters {
		if r.OwnerID == userID {
			return r, true
		}
	}
	for _, r := range rosters {
		for _, co := range r.CoOwners {
			if co == userID {
				return r, true
			}
		}
	}
	return models.RosterResponse{}, false
}

// convertRoster folds starters, taxi and reserve into the complete player list.
func convertRoster(r models.RosterResponse) models.RosterSnapshot {
	return models.RosterSnapshot{
		RosterID: rosterID(r.RosterID),
		OwnerID:  r.OwnerID,
		Players:  mergeIDs(r.Players, r.Starters, r.Taxi, r.Reserve),
		Starters: mergeIDs(r.Starters),
	}
}

func convertMatchup(m models.MatchupResponse) models.MatchupSnapshot {
	matchupID := 0
	if m.MatchupID != nil {
		matchupID = *m.MatchupID
	}
	return models.MatchupSnapshot{
		RosterID:  rosterID(m.RosterID),
		MatchupID: matchupID,
		Starters:  mergeIDs(m.Starters),
		Points:    m.Points,
	}
}

func rosterID(id int) string {
	return strconv.Itoa(id)
}

// mergeIDs concatenates the lists keeping first occurrence order. Empty ids
// and the "0" placeholder used for unfilled lineup slots are dropped.
func mergeIDs(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, id := range list {
			if id == "" || id == "0" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

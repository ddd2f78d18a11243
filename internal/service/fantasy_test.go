package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/millermeares/FantasyFootballSuperUser/internal/analysis"
	"github.com/millermeares/FantasyFootballSuperUser/internal/directory"
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
	"github.com/millermeares/FantasyFootballSuperUser/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu    sync.Mutex
	input *models.AnalysisInput
	err   error
	calls int
}

func (f *fakeSource) GetAnalysisInput(_ context.Context) (*models.AnalysisInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.input, nil
}

func testPlayers() *directory.Directory {
	return directory.New(map[string]models.PlayerInfo{
		"p1": {Name: "Josh Allen", Position: "QB", Team: "BUF"},
		"p2": {Name: "Saquon Barkley", Position: "RB", Team: "PHI"},
		"p4": {Name: "Tyreek Hill", Position: "WR", Team: "MIA"},
		"p5": {Name: "Travis Kelce", Position: "TE", Team: "KC"},
		"p7": {Name: "CeeDee Lamb", Position: "WR", Team: "DAL"},
		"p9": {Name: "Derrick Henry", Position: "RB", Team: "BAL"},
	})
}

func testInput() *models.AnalysisInput {
	return &models.AnalysisInput{
		UserID: "user-1",
		Week:   3,
		Leagues: []models.League{
			{ID: "la", Name: "Dynasty Degens"},
			{ID: "lb", Name: "Work League"},
		},
		Selections: []models.TeamSelection{
			{LeagueID: "la", LeagueName: "Dynasty Degens", RosterID: "1", Selected: true},
			{LeagueID: "lb", LeagueName: "Work League", RosterID: "3", Selected: true},
		},
		Rosters: map[string][]models.RosterSnapshot{
			"la": {{RosterID: "1", Players: []string{"p1", "p2"}, Starters: []string{"p1", "p2"}}},
			"lb": {{RosterID: "3", Players: []string{"p1", "p7", "p9"}, Starters: []string{"p1", "p7"}}},
		},
		Matchups: map[string][]models.MatchupSnapshot{
			"la": {
				{RosterID: "1", MatchupID: 1, Starters: []string{"p1", "p2"}},
				{RosterID: "2", MatchupID: 1, Starters: []string{"p4", "p5"}},
			},
			"lb": {
				{RosterID: "3", MatchupID: 4, Starters: []string{"p1", "p7"}},
				{RosterID: "4", MatchupID: 4, Starters: []string{"p4", "p9"}},
			},
		},
	}
}

func newTestService(source SnapshotSource, policy analysis.ConflictPolicy) *FantasyService {
	return NewFantasyService(source, memory.NewRepository(), testPlayers(), Options{
		RefreshInterval: time.Hour,
		ConflictPolicy:  policy,
		Logger:          logging.NewNop(),
	})
}

func TestAnalyze(t *testing.T) {
	source := &fakeSource{input: testInput()}
	svc := newTestService(source, analysis.PolicyIndependent)

	report, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, report.Gameday.CheeringFor)
	assert.Equal(t, "p1", report.Gameday.CheeringFor[0].ID)
	assert.Equal(t, 2, report.Gameday.CheeringFor[0].Count)
	assert.Equal(t, "p4", report.Gameday.CheeringAgainst[0].ID)
	assert.Equal(t, 2, report.Exposure.TotalTeams)

	_, err = svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls, "fresh snapshot is reused")
}

func TestAnalyzeAppliesConflictPolicy(t *testing.T) {
	in := testInput()
	in.Matchups["lb"][1].Starters = []string{"p4", "p9", "p7"}

	independent, err := newTestService(&fakeSource{input: in}, analysis.PolicyIndependent).Analyze(context.Background())
	require.NoError(t, err)
	higher, err := newTestService(&fakeSource{input: in}, analysis.PolicyHigherCount).Analyze(context.Background())
	require.NoError(t, err)

	assert.Len(t, independent.Gameday.CheeringAgainst, 4)
	assert.Len(t, higher.Gameday.CheeringAgainst, 3, "p7 tie stays with cheering for")
	assert.Len(t, higher.Gameday.CheeringFor, 3)
}

func TestAnalyzeValidationError(t *testing.T) {
	in := testInput()
	in.UserID = ""
	svc := newTestService(&fakeSource{input: in}, "")

	_, err := svc.Analyze(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{analysis.MsgUserIDRequired}, verr.Problems)
}

func TestAnalyzeWithoutSnapshot(t *testing.T) {
	svc := newTestService(&fakeSource{err: errors.New("disk on fire")}, "")

	_, err := svc.Analyze(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestAnalyzeServesStaleSnapshot(t *testing.T) {
	source := &fakeSource{input: testInput()}
	repo := memory.NewRepository()
	svc := NewFantasyService(source, repo, testPlayers(), Options{RefreshInterval: time.Nanosecond, Logger: logging.NewNop()})
	require.NoError(t, svc.Refresh(context.Background()))

	time.Sleep(time.Millisecond)
	source.mu.Lock()
	source.err = errors.New("assembler offline")
	source.mu.Unlock()

	report, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report.Exposure.Players)
	assert.Equal(t, 2, source.calls)
}

func TestToggleTeam(t *testing.T) {
	svc := newTestService(&fakeSource{input: testInput()}, "")
	ctx := context.Background()

	team, err := svc.ToggleTeam(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, "lb", team.LeagueID)
	assert.False(t, team.Selected)

	exposure, err := svc.GetExposureData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, exposure.TotalTeams)
	for _, p := range exposure.Players {
		assert.Equal(t, []string{"Dynasty Degens"}, p.Leagues)
	}

	team, err = svc.ToggleTeam(ctx, "lb")
	require.NoError(t, err)
	assert.True(t, team.Selected)

	_, err = svc.ToggleTeam(ctx, "zzzz")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestToggleLastTeamFailsValidation(t *testing.T) {
	svc := newTestService(&fakeSource{input: testInput()}, "")
	ctx := context.Background()

	_, err := svc.ToggleTeam(ctx, "la")
	require.NoError(t, err)
	_, err = svc.ToggleTeam(ctx, "Work League")
	require.NoError(t, err)

	_, err = svc.GetGamedayReport(ctx)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleTeamConcurrent(t *testing.T) {
	svc := newTestService(&fakeSource{input: testInput()}, "")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleTeam(ctx, "lb")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	for _, team := range teams {
		assert.True(t, team.Selected, team.LeagueID)
	}
}

func TestGetPlayerLeagues(t *testing.T) {
	svc := newTestService(&fakeSource{input: testInput()}, "")
	ctx := context.Background()

	got, err := svc.GetPlayerLeagues(ctx, "josh allen")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, []string{"Dynasty Degens", "Work League"}, got.CheeringFor)
	assert.Empty(t, got.CheeringAgainst)
	assert.Equal(t, []string{"Dynasty Degens", "Work League"}, got.Exposure)

	got, err = svc.GetPlayerLeagues(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, []string{"Work League"}, got.CheeringAgainst)
	assert.Equal(t, []string{"Work League"}, got.Exposure)

	_, err = svc.GetPlayerLeagues(ctx, "Lamar Jackson")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestReports(t *testing.T) {
	svc := newTestService(&fakeSource{input: testInput()}, "")
	ctx := context.Background()

	gameday, err := svc.GetGamedayReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, gameday, "*Week 3 Gameday*")
	assert.Contains(t, gameday, "_2 of 2 teams selected_")
	assert.Contains(t, gameday, "2 · Josh Allen (QB - BUF)")
	assert.Contains(t, gameday, "2 · Tyreek Hill (WR - MIA)")

	exposure, err := svc.GetExposureReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, exposure, "(2 teams)")
	assert.Contains(t, exposure, "100.0% · Josh Allen (QB - BUF)")
	assert.Contains(t, exposure, "50.0% · CeeDee Lamb (WR - DAL)")

	teams, err := svc.GetTeamsReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, teams, "✅ Dynasty Degens (roster 1)")

	popup, err := svc.GetPlayerLeaguesReport(ctx, "Derrick Henry")
	require.NoError(t, err)
	assert.Contains(t, popup, "*Cheering Against* (1)")
	assert.Contains(t, popup, "  • Work League")
}

func TestFormatExposureReportWithoutTeams(t *testing.T) {
	got := formatExposureReport(models.ExposureData{})
	assert.Contains(t, got, "No teams selected.")
}

// unescaped counts occurrences of marker not preceded by a backslash.
func unescaped(s, marker string) int {
	return strings.Count(s, marker) - strings.Count(s, `\`+marker)
}

func TestFormatEscapesMarkdownInNames(t *testing.T) {
	star := models.PlayerInfo{ID: "p1", Name: "Amon-Ra St. Brown*", Position: "WR", Team: "DET"}
	leagues := []string{"Dynasty_2024"}

	gameday := formatGamedayReport(models.GamedayData{
		Week:        7,
		CheeringFor: []models.PlayerAllegiance{{PlayerInfo: star, Count: 1, Leagues: leagues}},
		Selections:  []models.TeamSelection{{LeagueID: "l1", LeagueName: "Dynasty_2024", Selected: true}},
	})
	assert.Contains(t, gameday, `Amon-Ra St. Brown\*`)
	assert.Zero(t, unescaped(gameday, "*")%2, gameday)
	assert.Zero(t, unescaped(gameday, "_")%2, gameday)

	teams := formatTeams([]models.TeamSelection{{LeagueID: "l1", LeagueName: "Dynasty_2024", RosterID: "1", Selected: true}})
	assert.Contains(t, teams, `Dynasty\_2024`)
	assert.Zero(t, unescaped(teams, "_")%2, teams)

	popup := formatPlayerLeagues(models.PlayerLeagues{PlayerInfo: star, CheeringFor: leagues, Exposure: leagues})
	assert.Contains(t, popup, `  • Dynasty\_2024`)
	assert.Zero(t, unescaped(popup, "_")%2, popup)
	assert.Zero(t, unescaped(popup, "*")%2, popup)
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/millermeares/FantasyFootballSuperUser/internal/directory"
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
	"github.com/millermeares/FantasyFootballSuperUser/internal/repository/memory"
	"github.com/millermeares/FantasyFootballSuperUser/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	input *models.AnalysisInput
	err   error
}

func (s stubSource) GetAnalysisInput(_ context.Context) (*models.AnalysisInput, error) {
	return s.input, s.err
}

func newService(source service.SnapshotSource) *service.FantasyService {
	return service.NewFantasyService(source, memory.NewRepository(), directory.New(nil), service.Options{
		RefreshInterval: time.Hour,
		Logger:          logging.NewNop(),
	})
}

func oneLeague() *models.AnalysisInput {
	return &models.AnalysisInput{
		UserID:     "u1",
		Week:       2,
		Leagues:    []models.League{{ID: "l1", Name: "Solo"}},
		Selections: []models.TeamSelection{{LeagueID: "l1", LeagueName: "Solo", RosterID: "1", Selected: true}},
		Rosters:    map[string][]models.RosterSnapshot{"l1": {{RosterID: "1", Players: []string{"a"}}}},
		Matchups:   map[string][]models.MatchupSnapshot{"l1": {{RosterID: "1", Starters: []string{"a"}}}},
	}
}

func TestScheduledReportsAreSent(t *testing.T) {
	var sent []string
	send := func(text string) error {
		sent = append(sent, text)
		return nil
	}

	s, err := NewScheduler(newService(stubSource{input: oneLeague()}), send, Options{Timezone: "Not/AZone", Logger: logging.NewNop()})
	require.NoError(t, err)

	s.sendGameday()
	s.sendExposure()

	require.Len(t, sent, 2)
	assert.Contains(t, sent[0], "*Week 2 Gameday*")
	assert.Contains(t, sent[1], "*Portfolio Exposure* (1 teams)")
}

func TestScheduledReportSkippedOnError(t *testing.T) {
	calls := 0
	send := func(string) error {
		calls++
		return nil
	}

	s, err := NewScheduler(newService(stubSource{err: errors.New("no data")}), send, Options{Timezone: "UTC", Logger: logging.NewNop()})
	require.NoError(t, err)

	s.sendGameday()
	s.refreshSnapshot()
	assert.Zero(t, calls)
}

func TestStartAndStop(t *testing.T) {
	s, err := NewScheduler(newService(stubSource{input: oneLeague()}), nil, Options{Timezone: "America/Chicago", RefreshInterval: time.Hour, Logger: logging.NewNop()})
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())
}

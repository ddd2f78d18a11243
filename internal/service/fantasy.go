package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/millermeares/FantasyFootballSuperUser/internal/analysis"
	"github.com/millermeares/FantasyFootballSuperUser/internal/directory"
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
	"github.com/millermeares/FantasyFootballSuperUser/internal/repository/memory"
	"github.com/sourcegraph/conc"
)

var (
	ErrNoSnapshot     = errors.New("no snapshot loaded")
	ErrInvalidInput   = errors.New("invalid analysis input")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
)

// ValidationError carries every problem the validator reported.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// SnapshotSource produces a fresh analysis input.
type SnapshotSource interface {
	GetAnalysisInput(ctx context.Context) (*models.AnalysisInput, error)
}

type Options struct {
	RefreshInterval time.Duration
	ConflictPolicy  analysis.ConflictPolicy
	Logger          *logging.Logger
}

type Report struct {
	Gameday  models.GamedayData  `json:"gameday"`
	Exposure models.ExposureData `json:"exposure"`
}

type FantasyService struct {
	source          SnapshotSource
	repo            *memory.Repository
	players         *directory.Directory
	engine          *analysis.Engine
	policy          analysis.ConflictPolicy
	refreshInterval time.Duration
	logger          *logging.Logger
}

func NewFantasyService(source SnapshotSource, repo *memory.Repository, players *directory.Directory, opts Options) *FantasyService {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	policy := opts.ConflictPolicy
	if policy == "" {
		policy = analysis.PolicyIndependent
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = time.Hour
	}
	return &FantasyService{
		source:          source,
		repo:            repo,
		players:         players,
		engine:          analysis.NewEngine(players, logger),
		policy:          policy,
		refreshInterval: refresh,
		logger:          logger,
	}
}

func (s *FantasyService) Refresh(ctx context.Context) error {
	snapshot, err := s.source.GetAnalysisInput(ctx)
	if err != nil {
		return fmt.Errorf("error refreshing snapshot: %w", err)
	}
	s.repo.SaveSnapshot(snapshot)
	s.logger.Info("Snapshot refreshed", "user_id", snapshot.UserID, "week", snapshot.Week, "leagues", len(snapshot.Leagues))
	return nil
}

// currentInput returns the cached snapshot with team-filter state applied,
// reloading it when missing or stale. A stale snapshot is served if the reload fails.
func (s *FantasyService) currentInput(ctx context.Context) (*models.AnalysisInput, error) {
	snapshot, updated := s.repo.GetSnapshot()
	if snapshot == nil || time.Since(updated) > s.refreshInterval {
		if err := s.Refresh(ctx); err != nil {
			if snapshot == nil {
				return nil, errors.Join(ErrNoSnapshot, err)
			}
			s.logger.Warn("Serving stale snapshot", "error", err, "last_updated", updated)
		} else {
			snapshot, _ = s.repo.GetSnapshot()
		}
	}
	return s.repo.ApplySelections(snapshot), nil
}

// Analyze validates the current snapshot and runs both calculators.
func (s *FantasyService) Analyze(ctx context.Context) (Report, error) {
	in, err := s.currentInput(ctx)
	if err != nil {
		return Report{}, err
	}

	if problems := s.engine.Validate(in); len(problems) > 0 {
		s.logger.Warn("Analysis input failed validation", "problems", problems)
		return Report{}, &ValidationError{Problems: problems}
	}

	var report Report
	var wg conc.WaitGroup
	wg.Go(func() {
		report.Gameday = s.engine.ComputeAllegiance(in)
	})
	wg.Go(func() {
		report.Exposure = s.engine.ComputeExposure(in)
	})
	wg.Wait()

	report.Gameday = analysis.ApplyConflictPolicy(report.Gameday, s.policy)
	return report, nil
}

func (s *FantasyService) GetGamedayData(ctx context.Context) (models.GamedayData, error) {
	report, err := s.Analyze(ctx)
	if err != nil {
		return models.GamedayData{}, err
	}
	return report.Gameday, nil
}

func (s *FantasyService) GetExposureData(ctx context.Context) (models.ExposureData, error) {
	report, err := s.Analyze(ctx)
	if err != nil {
		return models.ExposureData{}, err
	}
	return report.Exposure, nil
}

func (s *FantasyService) GetGamedayReport(ctx context.Context) (string, error) {
	data, err := s.GetGamedayData(ctx)
	if err != nil {
		return "", fmt.Errorf("error computing gameday report: %w", err)
	}
	return formatGamedayReport(data), nil
}

func (s *FantasyService) GetExposureReport(ctx context.Context) (string, error) {
	data, err := s.GetExposureData(ctx)
	if err != nil {
		return "", fmt.Errorf("error computing exposure report: %w", err)
	}
	return formatExposureReport(data), nil
}

func (s *FantasyService) ListTeams(ctx context.Context) ([]models.TeamSelection, error) {
	in, err := s.currentInput(ctx)
	if err != nil {
		return nil, err
	}
	return in.Selections, nil
}

func (s *FantasyService) GetTeamsReport(ctx context.Context) (string, error) {
	teams, err := s.ListTeams(ctx)
	if err != nil {
		return "", fmt.Errorf("error listing teams: %w", err)
	}
	return formatTeams(teams), nil
}

// ToggleTeam flips the inclusion flag of the team whose league matches query
// by id, exact name, or closest fuzzy name.
func (s *FantasyService) ToggleTeam(ctx context.Context, query string) (models.TeamSelection, error) {
	teams, err := s.ListTeams(ctx)
	if err != nil {
		return models.TeamSelection{}, err
	}

	idx := matchTeam(teams, query)
	if idx < 0 {
		return models.TeamSelection{}, fmt.Errorf("%w: %s", ErrTeamNotFound, query)
	}

	team := teams[idx]
	team.Selected = s.repo.Toggle(team.LeagueID, team.Selected)
	s.logger.Info("Team selection changed", "league_id", team.LeagueID, "league", team.LeagueName, "selected", team.Selected)
	return team, nil
}

func matchTeam(teams []models.TeamSelection, query string) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1
	}
	for i, t := range teams {
		if t.LeagueID == query || strings.EqualFold(t.LeagueName, query) {
			return i
		}
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.DisplayName()
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return -1
	}
	sort.Stable(ranks)
	return ranks[0].OriginalIndex
}

// GetPlayerLeagues resolves query (player id or name) among the players in the
// current reports and lists the leagues behind each of its counts.
func (s *FantasyService) GetPlayerLeagues(ctx context.Context, query string) (models.PlayerLeagues, error) {
	report, err := s.Analyze(ctx)
	if err != nil {
		return models.PlayerLeagues{}, err
	}

	var candidates []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			candidates = append(candidates, id)
		}
	}
	for _, p := range report.Gameday.CheeringFor {
		add(p.ID)
	}
	for _, p := range report.Gameday.CheeringAgainst {
		add(p.ID)
	}
	for _, p := range report.Exposure.Players {
		add(p.ID)
	}

	player, ok := s.players.Search(query, candidates)
	if !ok {
		return models.PlayerLeagues{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, query)
	}

	result := models.PlayerLeagues{PlayerInfo: player}
	for _, p := range report.Gameday.CheeringFor {
		if p.ID == player.ID {
			result.CheeringFor = p.Leagues
		}
	}
	for _, p := range report.Gameday.CheeringAgainst {
		if p.ID == player.ID {
			result.CheeringAgainst = p.Leagues
		}
	}
	for _, p := range report.Exposure.Players {
		if p.ID == player.ID {
			result.Exposure = p.Leagues
		}
	}
	return result, nil
}

func (s *FantasyService) GetPlayerLeaguesReport(ctx context.Context, query string) (string, error) {
	leagues, err := s.GetPlayerLeagues(ctx, query)
	if err != nil {
		return "", fmt.Errorf("error looking up player: %w", err)
	}
	return formatPlayerLeagues(leagues), nil
}

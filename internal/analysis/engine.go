// Package analysis turns a league/roster/matchup snapshot into gameday
// allegiance and portfolio exposure reports. Every operation is a pure
// function of its input; nothing here blocks or keeps state between calls.
package analysis

import (
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
)

// PlayerResolver maps a player id to display attributes, applying fallbacks
// for unknown ids.
type PlayerResolver interface {
	Resolve(id string) models.PlayerInfo
}

type fallbackResolver struct{}

func (fallbackResolver) Resolve(id string) models.PlayerInfo {
	return models.FallbackPlayer(id)
}

type Engine struct {
	players PlayerResolver
	logger  *logging.Logger
}

func NewEngine(players PlayerResolver, logger *logging.Logger) *Engine {
	if players == nil {
		players = fallbackResolver{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{players: players, logger: logger}
}

// Validate runs the structural pre-checks. See Validate.
func (e *Engine) Validate(in *models.AnalysisInput) []string {
	return Validate(in)
}

func (e *Engine) resolve(id string) models.PlayerInfo {
	info := e.players.Resolve(id)
	info.ID = id
	if info.Name == "" {
		info.Name = models.UnknownPlayerName
	}
	if info.Position == "" {
		info.Position = models.UnknownPosition
	}
	if info.Team == "" {
		info.Team = models.FreeAgentTeam
	}
	return info
}

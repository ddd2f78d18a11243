package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/millermeares/FantasyFootballSuperUser/internal/service"
)

const helpText = "Available commands:\n" +
	"/gameday - Who to cheer for and against this week\n" +
	"/exposure - Share of your teams rostering each player\n" +
	"/teams - List your teams and which are included\n" +
	"/toggle <league> - Include or exclude a league\n" +
	"/player <name> - Leagues behind a player's counts\n" +
	"/refresh - Reload league data"

type Handler struct {
	fantasyService *service.FantasyService
}

func NewHandler(fantasyService *service.FantasyService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = tgbotapi.ModeMarkdown

	switch command {
	case "start":
		msg.Text = "Welcome to Super User! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "gameday":
		h.handleGameday(ctx, &msg)
	case "exposure":
		h.handleExposure(ctx, &msg)
	case "teams":
		h.handleTeams(ctx, &msg)
	case "toggle":
		h.handleToggle(ctx, &msg, args)
	case "player":
		h.handlePlayer(ctx, &msg, args)
	case "refresh":
		h.handleRefresh(ctx, &msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleGameday(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetGamedayReport(ctx)
	if err != nil {
		msg.Text = errorText("Error building gameday report", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleExposure(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetExposureReport(ctx)
	if err != nil {
		msg.Text = errorText("Error building exposure report", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleTeams(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetTeamsReport(ctx)
	if err != nil {
		msg.Text = errorText("Error listing teams", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleToggle(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a league name. Usage: /toggle <league name>"
		return
	}
	team, err := h.fantasyService.ToggleTeam(ctx, args)
	if err != nil {
		msg.Text = errorText("Error toggling team", err)
		return
	}
	state := "excluded from"
	if team.Selected {
		state = "included in"
	}
	msg.Text = fmt.Sprintf("*%s* is now %s your reports.", escapeMarkdown(team.DisplayName()), state)
}

func (h *Handler) handlePlayer(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /player <player name>"
		return
	}
	report, err := h.fantasyService.GetPlayerLeaguesReport(ctx, args)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			msg.Text = fmt.Sprintf("🔍 No player found matching '%s'.", escapeMarkdown(args))
			return
		}
		msg.Text = errorText("Error looking up player", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleRefresh(ctx context.Context, msg *tgbotapi.MessageConfig) {
	if err := h.fantasyService.Refresh(ctx); err != nil {
		msg.Text = errorText("Error refreshing league data", err)
	} else {
		msg.Text = "League data refreshed."
	}
}

// errorText lists validation problems one per line instead of the joined error.
func errorText(prefix string, err error) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		problems := make([]string, len(verr.Problems))
		for i, p := range verr.Problems {
			problems[i] = escapeMarkdown(p)
		}
		return prefix + ":\n• " + strings.Join(problems, "\n• ")
	}
	return fmt.Sprintf("%s: %s", prefix, escapeMarkdown(err.Error()))
}

func escapeMarkdown(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

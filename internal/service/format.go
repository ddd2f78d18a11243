package service

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

// escape neutralises Markdown control characters in names taken from league data.
func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func formatGamedayReport(data models.GamedayData) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Week %d Gameday*\n", data.Week))
	sb.WriteString(fmt.Sprintf("_%d of %d teams selected_\n\n", countSelected(data.Selections), len(data.Selections)))

	tables := data.Tables()
	icons := []string{"📣", "😬"}
	for i, table := range tables {
		sb.WriteString(fmt.Sprintf("%s *%s*\n", icons[i], table.Title))
		writeTable(&sb, table)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatExposureReport(data models.ExposureData) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Portfolio Exposure* (%d teams)\n\n", data.TotalTeams))

	if data.TotalTeams == 0 {
		sb.WriteString("No teams selected.")
		return sb.String()
	}

	table := data.Table()
	writeTable(&sb, table)
	return strings.TrimRight(sb.String(), "\n")
}

func writeTable(sb *strings.Builder, table models.PlayerTable) {
	if len(table.Rows) == 0 {
		sb.WriteString("No players.\n")
		return
	}
	for _, row := range table.Rows {
		sb.WriteString(fmt.Sprintf("%s · %s (%s - %s)\n", table.Value(row), escape(row.Name), escape(row.Position), escape(row.Team)))
	}
}

func formatTeams(teams []models.TeamSelection) string {
	var sb strings.Builder
	sb.WriteString("📋 *Your Teams*\n\n")

	if len(teams) == 0 {
		sb.WriteString("No teams found.")
		return sb.String()
	}

	for _, t := range teams {
		mark := "⬜"
		if t.Selected {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("%s %s (roster %s)\n", mark, escape(t.DisplayName()), escape(t.RosterID)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatPlayerLeagues(p models.PlayerLeagues) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", escape(p.Name), escape(p.Position), escape(p.Team)))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")

	sections := []struct {
		title   string
		leagues []string
	}{
		{"Cheering For", p.CheeringFor},
		{"Cheering Against", p.CheeringAgainst},
		{"Rostered In", p.Exposure},
	}
	for _, section := range sections {
		if len(section.leagues) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s* (%d)\n", section.title, len(section.leagues)))
		for _, league := range section.leagues {
			sb.WriteString(fmt.Sprintf("  • %s\n", escape(league)))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func countSelected(teams []models.TeamSelection) int {
	n := 0
	for _, t := range teams {
		if t.Selected {
			n++
		}
	}
	return n
}

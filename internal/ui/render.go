package ui

import (
	"fmt"
	"strings"

	"card-fraud-detector/internal/domain"
	"card-fraud-detector/internal/history"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var historyColumns = []string{"Date", "Montant", "Type", "Statut", "Score"}

var (
	primary   = lipgloss.Color("#7D56F4")
	muted     = lipgloss.Color("#8A8A8A")
	danger    = lipgloss.Color("#E5534B")
	success   = lipgloss.Color("#3FB950")
	attention = lipgloss.Color("#D29922")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary)
	subtitleStyle = lipgloss.NewStyle().Foreground(muted)
	sectionStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerCell    = lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1)
	cell          = lipgloss.NewStyle().Padding(0, 1)
	statLabel     = lipgloss.NewStyle().Foreground(muted)
	statValue     = lipgloss.NewStyle().Bold(true).Foreground(primary)
	statBlock     = lipgloss.NewStyle().Padding(0, 3)
)

// FormatAmount renders an amount the way the history table shows it.
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func RenderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		"🔒",
		titleStyle.Render("Détection de Fraude"),
		subtitleStyle.Render("Système de surveillance en temps réel"),
	)
}

// RenderHistory draws the history table, one row per record in the given
// order.
func RenderHistory(records []domain.TransactionRecord) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		Headers(historyColumns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			if col == 3 && row >= 0 && row < len(records) {
				return cell.Foreground(statusColor(records[row].Status))
			}
			return cell
		})

	for _, rec := range records {
		t.Row(
			rec.Timestamp.Format(domain.TimestampLayout),
			FormatAmount(rec.Amount, rec.Currency),
			rec.Type,
			rec.Status.String(),
			rec.Score,
		)
	}

	return sectionStyle.Render("Historique des Transactions") + "\n" + t.String()
}

func RenderFooter(stats []history.Stat) string {
	blocks := make([]string, 0, len(stats))
	for _, s := range stats {
		blocks = append(blocks, statBlock.Render(lipgloss.JoinVertical(lipgloss.Center,
			statLabel.Render(s.Label),
			statValue.Render(s.Value),
		)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// RenderScreen stacks header, history and footer.
func RenderScreen(records []domain.TransactionRecord, stats []history.Stat) string {
	var b strings.Builder
	b.WriteString(RenderHeader())
	b.WriteString("\n")
	b.WriteString(RenderHistory(records))
	b.WriteString("\n\n")
	b.WriteString(RenderFooter(stats))
	b.WriteString("\n")
	return b.String()
}

func statusColor(s domain.Status) lipgloss.Color {
	if s == domain.Suspect {
		return danger
	}
	return success
}

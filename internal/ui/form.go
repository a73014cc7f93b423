package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"card-fraud-detector/internal/domain"
	"card-fraud-detector/internal/session"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the huh theme registered under name, falling back to charm.
func Theme(name string) *huh.Theme {
	switch name {
	case "dracula":
		return huh.ThemeDracula()
	case "base16":
		return huh.ThemeBase16()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	default:
		return huh.ThemeCharm()
	}
}

// Terminal is the interactive host: it prints the screen to out and runs huh
// forms for input and notices. Field values survive between submissions so
// a rejected entry can be corrected in place.
type Terminal struct {
	out      io.Writer
	theme    *huh.Theme
	currency string

	card     string
	amount   string
	txType   string
	time     string
	location string
}

func NewTerminal(out io.Writer, theme *huh.Theme, currency string) *Terminal {
	return &Terminal{
		out:      out,
		theme:    theme,
		currency: currency,
	}
}

func (t *Terminal) Render(view session.View) {
	fmt.Fprint(t.out, RenderScreen(view.Records, view.Stats))
}

// Collect shows the transaction form and returns what the operator entered.
func (t *Terminal) Collect(ctx context.Context) (domain.TransactionInput, error) {
	types := make([]string, 0, len(domain.TransactionTypes))
	for _, tt := range domain.TransactionTypes {
		types = append(types, string(tt))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Numéro de carte").
				Placeholder("Ex: 1234 5678 9012 3456").
				Value(&t.card),
			huh.NewInput().
				Title(fmt.Sprintf("Montant (%s)", t.currency)).
				Placeholder("Montant").
				Value(&t.amount),
			huh.NewSelect[string]().
				Title("Type de transaction").
				Options(huh.NewOptions(types...)...).
				Value(&t.txType),
			huh.NewInput().
				Title("Heure").
				Placeholder("HH:MM").
				Value(&t.time),
			huh.NewInput().
				Title("Localisation").
				Placeholder("Ville, Pays").
				Value(&t.location),
		).Title("Nouvelle Transaction").
			Description("Entrée pour passer au champ suivant, valider pour analyser la transaction."),
	).WithTheme(t.theme)

	if err := form.RunWithContext(ctx); err != nil {
		return domain.TransactionInput{}, translate(err)
	}

	return domain.TransactionInput{
		CardNumber: t.card,
		Amount:     t.amount,
		Type:       t.txType,
		Time:       t.time,
		Location:   t.location,
	}, nil
}

// Notify blocks until the operator acknowledges the notice.
func (t *Terminal) Notify(ctx context.Context, notice session.Notice) error {
	title := lipgloss.NewStyle().Bold(true).Foreground(noticeColor(notice.Level)).Render(notice.Title)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description(notice.Message).
				Next(true).
				NextLabel("OK"),
		),
	).WithTheme(t.theme)

	if err := form.RunWithContext(ctx); err != nil {
		return translate(err)
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return session.ErrQuit
	}
	return err
}

func noticeColor(level session.Level) lipgloss.Color {
	switch level {
	case session.LevelWarning:
		return attention
	case session.LevelError:
		return danger
	default:
		return success
	}
}

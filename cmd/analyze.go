package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"card-fraud-detector/internal/config"
	"card-fraud-detector/internal/detector"
	"card-fraud-detector/internal/domain"
	"card-fraud-detector/internal/export"
	"card-fraud-detector/internal/history"
	"card-fraud-detector/internal/session"
	"card-fraud-detector/internal/ui"

	"github.com/spf13/cobra"
)

// errRejected marks a validation failure that has already been reported.
var errRejected = errors.New("transaction rejected")

func newAnalyzeCmd(root *flagValues) *cobra.Command {
	var (
		in     domain.TransactionInput
		output string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Validate and classify one transaction without the form",
		Example: `  fraud-detector analyze --card "1234 5678 9012 3456" --amount "1500 FCFA" \
    --type Retrait --time 14:30 --location Dakar --output json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, *root)
			if err != nil {
				return err
			}
			return runAnalyze(cfg, in, output, time.Now(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.CardNumber, "card", "", "card number, 16 digits (spaces allowed)")
	f.StringVar(&in.Amount, "amount", "", "amount, optionally followed by the currency unit")
	f.StringVar(&in.Type, "type", "", "transaction type (Achat en ligne, Achat en magasin, Retrait, Transfert)")
	f.StringVar(&in.Time, "time", "", "time of the transaction, HH:MM")
	f.StringVar(&in.Location, "location", "", "city and country, no digits")
	f.StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

func runAnalyze(cfg config.Config, in domain.TransactionInput, output string, now time.Time, stdout, stderr io.Writer) error {
	switch output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	logger := newLogger(stderr, cfg.LogLevel, "analyze")
	if in.Type != "" && !domain.KnownType(in.Type) {
		logger.Warn("transaction type outside the known set", "type", in.Type, "known", domain.TransactionTypes)
	}
	store := history.NewStore(false, cfg.Currency, now)
	sess := session.New(detector.New(cfg.Currency), store, logger,
		session.WithClock(func() time.Time { return now }),
	)

	outcome := sess.Submit(in)
	if outcome.Err != nil {
		fmt.Fprintf(stdout, "%s: %s\n", outcome.Notice.Title, outcome.Notice.Message)
		return fmt.Errorf("%w: %w", errRejected, outcome.Err)
	}

	switch output {
	case "json":
		data, err := export.JSON(*outcome.Record, cfg.CurrencyCode)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
	case "yaml":
		data, err := export.YAML(*outcome.Record, cfg.CurrencyCode)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, string(data))
	default:
		writeText(stdout, *outcome.Record, outcome.Notice)
	}
	return nil
}

func writeText(w io.Writer, rec domain.TransactionRecord, notice session.Notice) {
	fmt.Fprintf(w, "%s: %s\n", notice.Title, notice.Message)
	fmt.Fprintf(w, "Date:    %s\n", rec.Timestamp.Format(domain.TimestampLayout))
	fmt.Fprintf(w, "Montant: %s\n", ui.FormatAmount(rec.Amount, rec.Currency))
	fmt.Fprintf(w, "Type:    %s\n", rec.Type)
	fmt.Fprintf(w, "Statut:  %s\n", rec.Status)
	fmt.Fprintf(w, "Score:   %s\n", rec.Score)
}

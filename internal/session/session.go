package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"card-fraud-detector/internal/detector"
	"card-fraud-detector/internal/domain"
	"card-fraud-detector/internal/history"
	"card-fraud-detector/internal/metrics"
	"card-fraud-detector/internal/parser"

	"github.com/charmbracelet/log"
)

// ErrQuit is returned by a Host when the operator leaves the form.
var ErrQuit = errors.New("operator quit")

type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a blocking message shown to the operator after a submission.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// View is everything the host needs to draw the screen.
type View struct {
	Records  []domain.TransactionRecord
	Stats    []history.Stat
	Currency string
}

// Host renders the screen and routes the submit action into the session.
type Host interface {
	Render(view View)
	Collect(ctx context.Context) (domain.TransactionInput, error)
	Notify(ctx context.Context, notice Notice) error
}

// Outcome is the result of one submission. Record is nil when validation
// failed.
type Outcome struct {
	Record *domain.TransactionRecord
	Notice Notice
	Err    error
}

type Session struct {
	detector *detector.Detector
	history  *history.Store
	metrics  *metrics.Metrics
	log      *log.Logger
	now      func() time.Time
}

type Option func(*Session)

// WithClock overrides the wall clock used to timestamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithMetrics records submission outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

func New(d *detector.Detector, store *history.Store, logger *log.Logger, opts ...Option) *Session {
	s := &Session{
		detector: d,
		history:  store,
		log:      logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and classifies one transaction. On success the record is
// prepended to the history.
func (s *Session) Submit(in domain.TransactionInput) Outcome {
	card := parser.MaskCardNumber(in.CardNumber)

	rec, err := s.detector.Analyze(in, s.now())
	if err != nil {
		reason := detector.Reason(err)
		if s.metrics != nil {
			s.metrics.ObserveRejected(reason)
		}
		s.log.Debug("transaction rejected", "card", card, "reason", reason, "err", err)
		return Outcome{
			Err: err,
			Notice: Notice{
				Level:   LevelError,
				Title:   "Erreur",
				Message: detector.UserMessage(err),
			},
		}
	}

	s.history.Prepend(rec)

	if rec.Suspicious() {
		if s.metrics != nil {
			s.metrics.ObserveSuspect()
		}
		s.log.Warn("suspicious transaction", "tx_id", rec.ID, "card", card, "amount", rec.Amount, "type", rec.Type)
		return Outcome{
			Record: &rec,
			Notice: Notice{Level: LevelWarning, Title: "Attention", Message: "Transaction suspecte détectée !"},
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveLegitimate()
	}
	s.log.Info("legitimate transaction", "tx_id", rec.ID, "card", card, "amount", rec.Amount, "type", rec.Type)
	return Outcome{
		Record: &rec,
		Notice: Notice{Level: LevelInfo, Title: "Succès", Message: "Transaction légitime"},
	}
}

func (s *Session) View() View {
	return View{
		Records:  s.history.Records(),
		Stats:    history.FooterStats(),
		Currency: s.detector.Currency(),
	}
}

// Run drives the form until the operator quits or ctx is cancelled.
func (s *Session) Run(ctx context.Context, host Host) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		host.Render(s.View())

		in, err := host.Collect(ctx)
		if err != nil {
			if s.closed(ctx, err) {
				return nil
			}
			return fmt.Errorf("failed to read form: %w", err)
		}

		outcome := s.Submit(in)
		if err := host.Notify(ctx, outcome.Notice); err != nil {
			if s.closed(ctx, err) {
				return nil
			}
			return fmt.Errorf("failed to show notice: %w", err)
		}
	}
}

// closed reports whether err means the operator left or the session was
// cancelled, rather than a host failure.
func (s *Session) closed(ctx context.Context, err error) bool {
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		s.log.Info("session closed", "records", s.history.Len())
		return true
	}
	return false
}

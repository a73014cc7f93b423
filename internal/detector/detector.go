package detector

import (
	"errors"
	"fmt"
	"time"

	"card-fraud-detector/internal/domain"
	"card-fraud-detector/internal/parser"

	"github.com/google/uuid"
)

// SuspiciousThreshold is the amount above which a transaction is flagged.
const SuspiciousThreshold = 1000.0

const (
	suspectScore    = "45%"
	legitimateScore = "98%"
	defaultCurrency = "FCFA"
)

// Detector validates and classifies transactions. The zero value is not
// usable; build one with New.
type Detector struct {
	currency string
	newID    func() string
}

func New(currency string) *Detector {
	if currency == "" {
		currency = defaultCurrency
	}
	return &Detector{
		currency: currency,
		newID:    uuid.NewString,
	}
}

// Currency returns the unit suffix stripped from amounts and used for display.
func (d *Detector) Currency() string {
	return d.currency
}

// Analyze validates the five fields in order and, if all pass, classifies
// the transaction. The first failing rule determines the returned error.
func (d *Detector) Analyze(in domain.TransactionInput, now time.Time) (domain.TransactionRecord, error) {
	amount, err := d.Validate(in)
	if err != nil {
		return domain.TransactionRecord{}, err
	}

	status, score := Classify(amount)
	return domain.TransactionRecord{
		ID:        d.newID(),
		Timestamp: now,
		Amount:    amount,
		Currency:  d.currency,
		Type:      in.Type,
		Status:    status,
		Score:     score,
	}, nil
}

// Validate runs the validation rules and returns the normalized amount.
func (d *Detector) Validate(in domain.TransactionInput) (float64, error) {
	if in.CardNumber == "" || in.Amount == "" || in.Type == "" || in.Time == "" || in.Location == "" {
		return 0, ErrMissingFields
	}

	if _, ok := parser.NormalizeCardNumber(in.CardNumber); !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCardNumber, parser.MaskCardNumber(in.CardNumber))
	}

	amount, err := parser.ParseAmount(in.Amount, d.currency)
	if err != nil {
		if errors.Is(err, parser.ErrNonPositive) {
			return 0, fmt.Errorf("%w: %w: %w", ErrInvalidAmount, ErrNonPositiveAmount, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}

	if _, err := parser.ParseClock(in.Time); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTime, err)
	}

	if parser.HasDigit(in.Location) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLocation, in.Location)
	}

	return amount, nil
}

// Classify applies the threshold rule. Status and score depend only on the
// amount.
func Classify(amount float64) (domain.Status, string) {
	if amount > SuspiciousThreshold {
		return domain.Suspect, suspectScore
	}
	return domain.Legitimate, legitimateScore
}

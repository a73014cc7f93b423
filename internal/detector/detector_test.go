package detector

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"card-fraud-detector/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 4, 14, 32, 10, 0, time.UTC)

func validInput() domain.TransactionInput {
	return domain.TransactionInput{
		CardNumber: "1234567890123456",
		Amount:     "150 FCFA",
		Type:       string(domain.OnlinePurchase),
		Time:       "09:00",
		Location:   "Dakar",
	}
}

func TestAnalyze_Suspect(t *testing.T) {
	t.Parallel()

	in := domain.TransactionInput{
		CardNumber: "1234567890123456",
		Amount:     "1500 FCFA",
		Type:       string(domain.Withdrawal),
		Time:       "14:30",
		Location:   "Dakar",
	}

	rec, err := New("FCFA").Analyze(in, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Suspect, rec.Status)
	assert.Equal(t, "45%", rec.Score)
	assert.Equal(t, "1500.00", fmt.Sprintf("%.2f", rec.Amount))
	assert.Equal(t, "Retrait", rec.Type)
	assert.Equal(t, "FCFA", rec.Currency)
	assert.Equal(t, "2026-03-04 14:32", rec.Timestamp.Format(domain.TimestampLayout))
	assert.NotEmpty(t, rec.ID)
	assert.True(t, rec.Suspicious())
}

func TestAnalyze_Legitimate(t *testing.T) {
	t.Parallel()

	rec, err := New("FCFA").Analyze(validInput(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Legitimate, rec.Status)
	assert.Equal(t, "Légitime", rec.Status.String())
	assert.Equal(t, "98%", rec.Score)
	assert.Equal(t, "150.00", fmt.Sprintf("%.2f", rec.Amount))
	assert.False(t, rec.Suspicious())
}

func TestAnalyze_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	d := New("FCFA")
	tests := []struct {
		amount string
		status domain.Status
		score  string
	}{
		{amount: "0.01", status: domain.Legitimate, score: "98%"},
		{amount: "999.99", status: domain.Legitimate, score: "98%"},
		{amount: "1000", status: domain.Legitimate, score: "98%"},
		{amount: "1000.00 FCFA", status: domain.Legitimate, score: "98%"},
		{amount: "1000.01", status: domain.Suspect, score: "45%"},
		{amount: "250000 FCFA", status: domain.Suspect, score: "45%"},
	}

	for _, tt := range tests {
		in := validInput()
		in.Amount = tt.amount
		rec, err := d.Analyze(in, fixedNow)
		require.NoError(t, err, tt.amount)
		assert.Equal(t, tt.status, rec.Status, tt.amount)
		assert.Equal(t, tt.score, rec.Score, tt.amount)
	}
}

func TestAnalyze_OnlyAmountDrivesClassification(t *testing.T) {
	t.Parallel()

	d := New("FCFA")
	base, err := d.Analyze(validInput(), fixedNow)
	require.NoError(t, err)

	other := validInput()
	other.Type = string(domain.Transfer)
	other.Time = "23:59"
	other.Location = "Saint-Louis"
	other.CardNumber = "9999 8888 7777 6666"
	rec, err := d.Analyze(other, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, base.Status, rec.Status)
	assert.Equal(t, base.Score, rec.Score)
	assert.Equal(t, base.Amount, rec.Amount)
}

func TestAnalyze_SpacedCardNumberEquivalent(t *testing.T) {
	t.Parallel()

	d := New("FCFA")
	spaced := validInput()
	spaced.CardNumber = "1234 5678 9012 3456"

	a, errA := d.Analyze(validInput(), fixedNow)
	b, errB := d.Analyze(spaced, fixedNow)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.Score, b.Score)
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(in *domain.TransactionInput)
		want   error
	}{
		{name: "missing card", mutate: func(in *domain.TransactionInput) { in.CardNumber = "" }, want: ErrMissingFields},
		{name: "missing amount", mutate: func(in *domain.TransactionInput) { in.Amount = "" }, want: ErrMissingFields},
		{name: "missing type", mutate: func(in *domain.TransactionInput) { in.Type = "" }, want: ErrMissingFields},
		{name: "missing time", mutate: func(in *domain.TransactionInput) { in.Time = "" }, want: ErrMissingFields},
		{name: "missing location", mutate: func(in *domain.TransactionInput) { in.Location = "" }, want: ErrMissingFields},
		{name: "letters in card", mutate: func(in *domain.TransactionInput) { in.CardNumber = "abcd efgh" }, want: ErrInvalidCardNumber},
		{name: "15 digit card", mutate: func(in *domain.TransactionInput) { in.CardNumber = "123456781234567" }, want: ErrInvalidCardNumber},
		{name: "zero amount", mutate: func(in *domain.TransactionInput) { in.Amount = "0" }, want: ErrInvalidAmount},
		{name: "negative amount", mutate: func(in *domain.TransactionInput) { in.Amount = "-5" }, want: ErrInvalidAmount},
		{name: "text amount", mutate: func(in *domain.TransactionInput) { in.Amount = "abc" }, want: ErrInvalidAmount},
		{name: "hex float amount", mutate: func(in *domain.TransactionInput) { in.Amount = "0x1p10" }, want: ErrInvalidAmount},
		{name: "underscore amount", mutate: func(in *domain.TransactionInput) { in.Amount = "1_000 FCFA" }, want: ErrInvalidAmount},
		{name: "hour out of range", mutate: func(in *domain.TransactionInput) { in.Time = "25:00" }, want: ErrInvalidTime},
		{name: "single digit parts", mutate: func(in *domain.TransactionInput) { in.Time = "9:5" }, want: ErrInvalidTime},
		{name: "digit in location", mutate: func(in *domain.TransactionInput) { in.Location = "Paris1" }, want: ErrInvalidLocation},
	}

	d := New("FCFA")
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := validInput()
			tt.mutate(&in)

			rec, err := d.Analyze(in, fixedNow)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, rec.ID)
		})
	}
}

func TestAnalyze_MissingFieldsWinsOverOtherErrors(t *testing.T) {
	t.Parallel()

	in := domain.TransactionInput{
		CardNumber: "abcd",
		Amount:     "-5",
		Type:       "",
		Time:       "99:99",
		Location:   "Paris1",
	}
	_, err := New("FCFA").Analyze(in, fixedNow)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.NotErrorIs(t, err, ErrInvalidCardNumber)
}

func TestAnalyze_RuleOrder(t *testing.T) {
	t.Parallel()

	d := New("FCFA")

	in := validInput()
	in.CardNumber = "1"
	in.Amount = "abc"
	_, err := d.Analyze(in, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidCardNumber)

	in = validInput()
	in.Amount = "abc"
	in.Time = "25:00"
	_, err = d.Analyze(in, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	in = validInput()
	in.Time = "25:00"
	in.Location = "Paris1"
	_, err = d.Analyze(in, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestAnalyze_ValidTimeAndLocation(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Time = "09:05"
	in.Location = "Paris"
	_, err := New("FCFA").Analyze(in, fixedNow)
	assert.NoError(t, err)
}

func TestNew_DefaultCurrency(t *testing.T) {
	t.Parallel()

	d := New("")
	assert.Equal(t, "FCFA", d.Currency())

	rec, err := d.Analyze(validInput(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 150.0, rec.Amount)
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	d := New("FCFA")
	message := func(mutate func(in *domain.TransactionInput)) string {
		in := validInput()
		mutate(&in)
		_, err := d.Analyze(in, fixedNow)
		require.Error(t, err)
		return UserMessage(err)
	}

	assert.Equal(t, "Veuillez remplir tous les champs", message(func(in *domain.TransactionInput) { in.Location = "" }))
	assert.Equal(t, "Numéro de carte invalide. La carte doit contenir 16 chiffres.", message(func(in *domain.TransactionInput) { in.CardNumber = "12" }))
	assert.Equal(t, "Le montant doit être supérieur à 0", message(func(in *domain.TransactionInput) { in.Amount = "0" }))
	assert.Equal(t, "Montant invalide", message(func(in *domain.TransactionInput) { in.Amount = "abc" }))
	assert.Equal(t, "Format d'heure invalide. Utilisez le format HH:MM", message(func(in *domain.TransactionInput) { in.Time = "25:00" }))
	assert.Equal(t, "La localisation ne doit pas contenir de chiffres", message(func(in *domain.TransactionInput) { in.Location = "Paris1" }))

	assert.Empty(t, UserMessage(nil))
	assert.Contains(t, UserMessage(errors.New("boom")), "boom")
}

func TestReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "missing_fields", Reason(ErrMissingFields))
	assert.Equal(t, "invalid_card_number", Reason(fmt.Errorf("%w: x", ErrInvalidCardNumber)))
	assert.Equal(t, "invalid_amount", Reason(ErrInvalidAmount))
	assert.Equal(t, "invalid_time", Reason(ErrInvalidTime))
	assert.Equal(t, "invalid_location", Reason(ErrInvalidLocation))
	assert.Equal(t, "unknown", Reason(errors.New("other")))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	status, score := Classify(1000)
	assert.Equal(t, domain.Legitimate, status)
	assert.Equal(t, "98%", score)

	status, score = Classify(1000.5)
	assert.Equal(t, domain.Suspect, status)
	assert.Equal(t, "45%", score)
}

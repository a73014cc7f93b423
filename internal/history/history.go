package history

import (
	"time"

	"card-fraud-detector/internal/domain"
)

// Stat is one footer statistic.
type Stat struct {
	Label string
	Value string
}

// footerStats are display literals; they are never recomputed from records.
var footerStats = []Stat{
	{Label: "Transactions aujourd'hui", Value: "127"},
	{Label: "Alertes", Value: "3"},
	{Label: "Score moyen", Value: "96%"},
}

// Store is the in-memory transaction history, most recent first. Records are
// never removed and nothing is written to disk. It is not safe for
// concurrent use; only the submit handler mutates it.
type Store struct {
	records []domain.TransactionRecord
}

// NewStore creates an empty store. When seed is true it holds the two
// sample rows shown on startup, stamped with now.
func NewStore(seed bool, currency string, now time.Time) *Store {
	store := &Store{
		records: []domain.TransactionRecord{},
	}

	if seed {
		store.records = append(store.records,
			domain.TransactionRecord{
				Timestamp: now,
				Amount:    150,
				Currency:  currency,
				Type:      "Achat",
				Status:    domain.Legitimate,
				Score:     "98%",
			},
			domain.TransactionRecord{
				Timestamp: now,
				Amount:    1200,
				Currency:  currency,
				Type:      "Retrait",
				Status:    domain.Suspect,
				Score:     "45%",
			},
		)
	}

	return store
}

// Prepend adds a record at the top of the history.
func (s *Store) Prepend(record domain.TransactionRecord) {
	s.records = append([]domain.TransactionRecord{record}, s.records...)
}

// Records returns a copy of the history, most recent first.
func (s *Store) Records() []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	return len(s.records)
}

// FooterStats returns the static footer statistics.
func FooterStats() []Stat {
	out := make([]Stat, len(footerStats))
	copy(out, footerStats)
	return out
}

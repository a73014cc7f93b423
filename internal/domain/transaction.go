package domain

import "time"

type Status int

const (
	Legitimate Status = iota
	Suspect
)

// String returns the label shown in the history table.
func (s Status) String() string {
	switch s {
	case Suspect:
		return "Suspect"
	case Legitimate:
		return "Légitime"
	default:
		return "Inconnu"
	}
}

// TransactionType values are the labels offered by the form's type selector.
type TransactionType string

const (
	OnlinePurchase  TransactionType = "Achat en ligne"
	InStorePurchase TransactionType = "Achat en magasin"
	Withdrawal      TransactionType = "Retrait"
	Transfer        TransactionType = "Transfert"
)

// TransactionTypes lists the selector options in display order.
var TransactionTypes = []TransactionType{OnlinePurchase, InStorePurchase, Withdrawal, Transfer}

// KnownType reports whether s is one of TransactionTypes.
func KnownType(s string) bool {
	for _, t := range TransactionTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// TimestampLayout is how record timestamps are displayed (YYYY-MM-DD HH:MM).
const TimestampLayout = "2006-01-02 15:04"

// TransactionInput holds the raw form fields of a single submission.
type TransactionInput struct {
	CardNumber string
	Amount     string
	Type       string
	Time       string
	Location   string
}

type TransactionRecord struct {
	ID        string
	Timestamp time.Time
	Amount    float64
	Currency  string
	Type      string
	Status    Status
	// Score is a fixed display literal derived from Status
	Score string
}

func (r TransactionRecord) Suspicious() bool {
	return r.Status == Suspect
}

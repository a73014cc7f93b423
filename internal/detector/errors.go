package detector

import "errors"

// Validation errors, one per rule. Analyze wraps them with the offending
// value, so compare with errors.Is.
var (
	ErrMissingFields     = errors.New("missing fields")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidTime       = errors.New("invalid time")
	ErrInvalidLocation   = errors.New("invalid location")

	// ErrNonPositiveAmount is joined with ErrInvalidAmount when the amount
	// parsed but was zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// UserMessage returns the operator-facing message for a validation error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFields):
		return "Veuillez remplir tous les champs"
	case errors.Is(err, ErrInvalidCardNumber):
		return "Numéro de carte invalide. La carte doit contenir 16 chiffres."
	case errors.Is(err, ErrNonPositiveAmount):
		return "Le montant doit être supérieur à 0"
	case errors.Is(err, ErrInvalidAmount):
		return "Montant invalide"
	case errors.Is(err, ErrInvalidTime):
		return "Format d'heure invalide. Utilisez le format HH:MM"
	case errors.Is(err, ErrInvalidLocation):
		return "La localisation ne doit pas contenir de chiffres"
	default:
		return "Une erreur est survenue : " + err.Error()
	}
}

// Reason returns a short machine label for a validation error, used as a
// metrics label.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, ErrInvalidCardNumber):
		return "invalid_card_number"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, ErrInvalidLocation):
		return "invalid_location"
	default:
		return "unknown"
	}
}

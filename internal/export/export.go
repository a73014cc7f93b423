package export

import (
	"errors"
	"fmt"
	"math"
	"time"

	"card-fraud-detector/internal/domain"

	money "google.golang.org/genproto/googleapis/type/money"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"gopkg.in/yaml.v3"
)

// maxUnits is the first magnitude whose whole part no longer fits in int64.
const maxUnits = 9.223372036854775807e18

// ErrAmountOutOfRange is returned when an amount cannot be held by
// google.type.Money units.
var ErrAmountOutOfRange = errors.New("amount out of range for money units")

// ToMoney converts a decimal amount to a google.type.Money, splitting it into
// whole units and nanos rounded to the nearest nano.
func ToMoney(amount float64, currencyCode string) (*money.Money, error) {
	if math.IsNaN(amount) || math.Abs(amount) >= maxUnits {
		return nil, fmt.Errorf("%g: %w", amount, ErrAmountOutOfRange)
	}
	units, frac := math.Modf(amount)
	nanos := math.Round(frac * 1e9)
	if nanos >= 1e9 {
		units++
		nanos -= 1e9
	}
	return &money.Money{
		CurrencyCode: currencyCode,
		Units:        int64(units),
		Nanos:        int32(nanos),
	}, nil
}

// Map flattens a record into plain values that both encoders share.
func Map(rec domain.TransactionRecord, currencyCode string) (map[string]any, error) {
	m, err := ToMoney(rec.Amount, currencyCode)
	if err != nil {
		return nil, err
	}
	amount := map[string]any{
		"currency_code": m.GetCurrencyCode(),
		"units":         m.GetUnits(),
		"nanos":         m.GetNanos(),
	}
	return map[string]any{
		"id":             rec.ID,
		"timestamp":      timestamppb.New(rec.Timestamp).AsTime().Format(time.RFC3339),
		"amount":         amount,
		"display_amount": fmt.Sprintf("%.2f %s", rec.Amount, rec.Currency),
		"type":           rec.Type,
		"status":         rec.Status.String(),
		"score":          rec.Score,
	}, nil
}

// JSON encodes the record as indented JSON through a structpb.Struct.
func JSON(rec domain.TransactionRecord, currencyCode string) ([]byte, error) {
	values, err := Map(rec, currencyCode)
	if err != nil {
		return nil, err
	}

	st, err := structpb.NewStruct(values)
	if err != nil {
		return nil, fmt.Errorf("failed to build record struct: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

func YAML(rec domain.TransactionRecord, currencyCode string) ([]byte, error) {
	values, err := Map(rec, currencyCode)
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

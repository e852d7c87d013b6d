package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/leasing"
)

// PaymentLineItem breaks a RentPayment down by charge category. When a
// payment carries no line items it is treated as a single rent line.
// It is a value object within the RentPayment aggregate, stored as JSONB.
type PaymentLineItem struct {
	ID         uuid.UUID              `json:"id"`
	Category   leasing.ChargeCategory `json:"category"`
	Name       string                 `json:"name,omitempty"`
	AmountDue  int64                  `json:"amount_due"`
	AmountPaid int64                  `json:"amount_paid"`
}

// NewPaymentLineItem creates a line item for one charge category
func NewPaymentLineItem(category leasing.ChargeCategory, name string, amountDue int64) PaymentLineItem {
	return PaymentLineItem{
		ID:        uuid.New(),
		Category:  category,
		Name:      name,
		AmountDue: amountDue,
	}
}

// allocationOrder fixes the order in which incoming money fills line
// items: base rent first, then utilities, fees, and everything else.
var allocationOrder = []leasing.ChargeCategory{
	leasing.ChargeCategoryRent,
	leasing.ChargeCategoryUtility,
	leasing.ChargeCategoryFee,
	leasing.ChargeCategoryOther,
}

// PaymentLineItems is a slice of PaymentLineItem that implements the
// GORM Scanner/Valuer interfaces for JSONB storage
type PaymentLineItems []PaymentLineItem

// Value implements driver.Valuer for GORM to store as JSONB
func (l PaymentLineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (l *PaymentLineItems) Scan(value interface{}) error {
	if value == nil {
		*l = PaymentLineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentLineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*l = PaymentLineItems{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Allocate distributes an incoming increment across line items in
// category order, filling each item up to its amount due. Any remainder
// after all items are covered lands on the first item (overpayment).
func (l PaymentLineItems) Allocate(increment int64) {
	if len(l) == 0 || increment <= 0 {
		return
	}

	remaining := increment
	for _, category := range allocationOrder {
		for i := range l {
			if l[i].Category != category {
				continue
			}
			open := l[i].AmountDue - l[i].AmountPaid
			if open <= 0 {
				continue
			}
			fill := min(open, remaining)
			l[i].AmountPaid += fill
			remaining -= fill
			if remaining == 0 {
				return
			}
		}
	}
	if remaining > 0 {
		l[0].AmountPaid += remaining
	}
}

// AddLateFee appends (or tops up) the fee line item when a period is
// marked late
func (l *PaymentLineItems) AddLateFee(fee int64) {
	if len(*l) == 0 {
		return
	}
	*l = append(*l, NewPaymentLineItem(leasing.ChargeCategoryFee, "Late fee", fee))
}

// TotalDue returns the sum of amount due across all line items
func (l PaymentLineItems) TotalDue() int64 {
	var total int64
	for i := range l {
		total += l[i].AmountDue
	}
	return total
}

// TotalPaid returns the sum of amount paid across all line items
func (l PaymentLineItems) TotalPaid() int64 {
	var total int64
	for i := range l {
		total += l[i].AmountPaid
	}
	return total
}

// AppliedTransaction records one external gateway transaction applied to
// a RentPayment. The set of recorded transaction IDs is the authoritative
// duplicate-delivery guard.
type AppliedTransaction struct {
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	AppliedAt     time.Time `json:"applied_at"`
}

// AppliedTransactions is a slice of AppliedTransaction that implements
// the GORM Scanner/Valuer interfaces for JSONB storage
type AppliedTransactions []AppliedTransaction

// Value implements driver.Valuer for GORM to store as JSONB
func (a AppliedTransactions) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (a *AppliedTransactions) Scan(value interface{}) error {
	if value == nil {
		*a = AppliedTransactions{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan AppliedTransactions: unsupported type")
	}

	if len(bytes) == 0 {
		*a = AppliedTransactions{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

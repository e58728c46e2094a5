package types

import "github.com/shopspring/decimal"

// OrderTab groups products under a table number with a running total.
// Declared only; it has no persistence or API surface.
type OrderTab struct {
	ID          int64           `json:"id" db:"id"`
	TableNumber int             `json:"table_number" db:"table_number"`
	Products    []*Product      `json:"products"`
	Total       decimal.Decimal `json:"total"`
}

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductID is the store-generated identifier for a product.
type ProductID int64

// IsNil returns true before the store has assigned an ID.
func (id ProductID) IsNil() bool {
	return id == 0
}

// Product is an object representing the database table.
type Product struct {
	ID        ProductID       `json:"id" db:"id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Name      string          `json:"name" db:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductChanges names the fields of a partial update. Nil fields are left
// untouched; the repository maps each set field to a fixed column.
type ProductChanges struct {
	Quantity  *int             `json:"quantity"`
	Name      *string          `json:"name"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// IsEmpty returns true when no field is set.
func (c ProductChanges) IsEmpty() bool {
	return c.Quantity == nil && c.Name == nil && c.UnitPrice == nil
}

package types

import "strings"

// ProductOutcome classifies the result of validating a product.
type ProductOutcome string

const (
	OutcomeOK              ProductOutcome = "OK"
	OutcomeInvalidName     ProductOutcome = "INVALID_NAME"
	OutcomeInvalidQuantity ProductOutcome = "INVALID_QUANTITY"
	OutcomeInvalidPrice    ProductOutcome = "INVALID_PRICE"
)

// ValidateProduct checks field rules in a fixed order (name, quantity, price)
// and reports the first violation. Quantity and unit price must both be
// non-negative; zero is allowed on create and update alike.
func ValidateProduct(p *Product) ProductOutcome {
	if strings.TrimSpace(p.Name) == "" {
		return OutcomeInvalidName
	}
	if p.Quantity < 0 {
		return OutcomeInvalidQuantity
	}
	if p.UnitPrice.IsNegative() {
		return OutcomeInvalidPrice
	}
	return OutcomeOK
}

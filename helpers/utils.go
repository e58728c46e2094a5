package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/ninja-software/terror/v2"
	"github.com/shopspring/decimal"
)

// EncodeJSON will encode json to response writer and return status ok.
func EncodeJSON(w http.ResponseWriter, result interface{}) (int, error) {
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "")
	}
	return http.StatusOK, nil
}

// StringPointer converts a string to a string pointer
func StringPointer(str string) *string {
	return &str
}

// IntPointer converts an int to an int pointer
func IntPointer(value int) *int {
	return &value
}

// DecimalPointer converts a decimal to a decimal pointer
func DecimalPointer(value decimal.Decimal) *decimal.Decimal {
	return &value
}

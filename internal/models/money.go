package models

import "github.com/shopspring/decimal"

// Amounts are written as JSON numbers. Decoding still accepts quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

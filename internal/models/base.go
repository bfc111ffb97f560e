package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// money goes over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ------------------------------
// Request Types
// ------------------------------

// Payload is the body (or query) of one API call. Values are primitives;
// nil serialises to JSON null.
type Payload map[string]any

// PurchaseDataRequest holds parameters for /data/purchase.
type PurchaseDataRequest struct {
	NetworkID string
	PlanID    string
	Phone     string

	// CustomerReference is passed through to the provider for correlation.
	CustomerReference string
	// Async asks the provider to queue the purchase. nil leaves it unset.
	Async *bool
}

// Payload builds the wire payload. Optional fields are sent as null.
func (r PurchaseDataRequest) Payload() Payload {
	p := Payload{
		"network_id":         r.NetworkID,
		"plan_id":            r.PlanID,
		"phone":              r.Phone,
		"customer_reference": optionalString(r.CustomerReference),
		"async":              nil,
	}
	if r.Async != nil {
		p["async"] = *r.Async
	}
	return p
}

// PurchaseAirtimeRequest holds parameters for /airtime/purchase.
type PurchaseAirtimeRequest struct {
	NetworkID         string
	Amount            decimal.Decimal
	Phone             string
	CustomerReference string
}

// Payload builds the wire payload.
func (r PurchaseAirtimeRequest) Payload() Payload {
	return Payload{
		"network_id":         r.NetworkID,
		"amount":             amount(r.Amount),
		"phone":              r.Phone,
		"customer_reference": optionalString(r.CustomerReference),
	}
}

// ResolveAccountRequest holds parameters for /transfer/resolveaccount.
type ResolveAccountRequest struct {
	BankCode      string
	AccountNumber string
}

// Payload builds the wire payload.
func (r ResolveAccountRequest) Payload() Payload {
	return Payload{
		"bank_code":      r.BankCode,
		"account_number": r.AccountNumber,
	}
}

// BankTransferRequest holds parameters for /transfer/send.
type BankTransferRequest struct {
	BankCode          string
	AccountNumber     string
	Amount            decimal.Decimal
	Description       string
	CustomerReference string
}

// Payload builds the wire payload.
func (r BankTransferRequest) Payload() Payload {
	return Payload{
		"bank_code":          r.BankCode,
		"account_number":     r.AccountNumber,
		"amount":             amount(r.Amount),
		"description":        optionalString(r.Description),
		"customer_reference": optionalString(r.CustomerReference),
	}
}

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// amount renders a decimal as a bare JSON number literal.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

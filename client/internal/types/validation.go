package types

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is wrapped by every client-side validation failure.
// No request is sent when it is returned.
var ErrInvalidRequest = errors.New("invalid request")

// Validate checks required fields.
func (r PurchaseDataRequest) Validate() error {
	return firstErr(
		required("network_id", r.NetworkID),
		required("plan_id", r.PlanID),
		required("phone", r.Phone),
	)
}

// Validate checks required fields and that amount is positive.
func (r PurchaseAirtimeRequest) Validate() error {
	return firstErr(
		required("network_id", r.NetworkID),
		positive("amount", r.Amount.IsPositive()),
		required("phone", r.Phone),
	)
}

// Validate checks required fields.
func (r ResolveAccountRequest) Validate() error {
	return firstErr(
		required("bank_code", r.BankCode),
		required("account_number", r.AccountNumber),
	)
}

// Validate checks required fields and that amount is positive.
func (r BankTransferRequest) Validate() error {
	return firstErr(
		required("bank_code", r.BankCode),
		required("account_number", r.AccountNumber),
		positive("amount", r.Amount.IsPositive()),
	)
}

func required(field, v string) error {
	if v == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
	}
	return nil
}

func positive(field string, ok bool) error {
	if !ok {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidRequest, field)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Charge rejections. These are recovered at the request boundary and rendered
// inline; they never surface as 5xx responses.
var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrCardNotFound  = errors.New("card not found")
)

// AmountExceedsRemainingError rejects a charge larger than the receipt's
// remaining balance.
type AmountExceedsRemainingError struct {
	Amount    decimal.Decimal
	Remaining decimal.Decimal
}

func (e *AmountExceedsRemainingError) Error() string {
	return fmt.Sprintf("charge of %s exceeds remaining balance of %s",
		e.Amount.StringFixed(2), e.Remaining.StringFixed(2))
}

// InsufficientFundsError rejects a charge larger than the card's available
// balance.
type InsufficientFundsError struct {
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available balance is %s", e.Available.StringFixed(2))
}

// IsRejection reports whether err is a charge rejection rather than an
// unexpected store failure.
func IsRejection(err error) bool {
	var exceeds *AmountExceedsRemainingError
	var funds *InsufficientFundsError
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrCardNotFound) ||
		errors.As(err, &exceeds) ||
		errors.As(err, &funds)
}

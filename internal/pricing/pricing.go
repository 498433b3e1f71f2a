// Package pricing computes the money side of an order: subtotal, platform fee,
// credit consumption, total and organizer payout.
package pricing

import (
	"eventpay/internal/apperr" // Error kinds

	"github.com/shopspring/decimal" // Money amounts
)

// PlatformFeeRate is the fixed surcharge on the subtotal retained by the platform.
var PlatformFeeRate = decimal.RequireFromString("0.10")

// Line is one priced line of an order
type Line struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Breakdown is the settled price of an order
type Breakdown struct {
	Subtotal        decimal.Decimal
	PlatformFee     decimal.Decimal
	CreditsUsed     decimal.Decimal
	Total           decimal.Decimal
	OrganizerAmount decimal.Decimal
}

// ValidateLines rejects inputs the calculation is not defined for.
func ValidateLines(lines []Line, requestedCredits decimal.Decimal) error {
	if len(lines) == 0 {
		return apperr.NewValidation("order must contain at least one item")
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return apperr.NewValidation("item quantity must be positive")
		}
		if l.UnitPrice.IsNegative() {
			return apperr.NewValidation("item unit price must not be negative")
		}
		if !IsCents(l.UnitPrice) {
			return apperr.NewValidation("item unit price must have at most 2 decimal places")
		}
	}
	if requestedCredits.IsNegative() {
		return apperr.NewValidation("use_credits must not be negative")
	}
	if !IsCents(requestedCredits) {
		return apperr.NewValidation("use_credits must have at most 2 decimal places")
	}
	return nil
}

// IsCents reports whether d fits a decimal(12,2) column without rounding
func IsCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// Quote prices lines against the buyer's balance.
//
// Credits are clamped to the balance only, not to the order cost: when more
// credits are requested than subtotal+fee, the total floors at zero but the
// whole clamped amount is still consumed.
func Quote(lines []Line, requestedCredits, balance decimal.Decimal) Breakdown {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	fee := subtotal.Mul(PlatformFeeRate).Round(2) // Half away from zero

	credits := decimal.Min(nonNegative(requestedCredits), nonNegative(balance))

	total := subtotal.Add(fee).Sub(credits)
	if total.IsNegative() {
		total = decimal.Zero // Clamp at zero
	}

	return Breakdown{
		Subtotal:        subtotal,
		PlatformFee:     fee,
		CreditsUsed:     credits,
		Total:           total,
		OrganizerAmount: subtotal,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

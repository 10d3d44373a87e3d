// Package coupon provides cart-level promotional code rules and discount
// calculation.
package coupon

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrInvalidCoupon is returned when a coupon code is not known.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// Rule defines a percentage discount applied to the cart subtotal.
type Rule struct {
	Code        string
	Percent     decimal.Decimal
	Description string
}

// Apply computes the discount amount for the given subtotal, rounded to two
// decimal places and never negative.
func (r *Rule) Apply(subtotal decimal.Decimal) decimal.Decimal {
	amount := subtotal.Mul(r.Percent).Div(hundred).Round(2)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Repository provides lookup of coupon rules by their code.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Rule, error)
}

// StaticRepository is an in-memory Repository over a fixed rule table.
type StaticRepository struct {
	rules map[string]Rule
}

// NewStaticRepository builds a StaticRepository from the given rules. Codes
// are matched case-insensitively.
func NewStaticRepository(rules ...Rule) *StaticRepository {
	m := make(map[string]Rule, len(rules))
	for _, r := range rules {
		m[strings.ToUpper(r.Code)] = r
	}
	return &StaticRepository{rules: m}
}

// DefaultRepository returns the built-in promotional codes.
func DefaultRepository() *StaticRepository {
	return NewStaticRepository(
		Rule{Code: "DESCONTO10", Percent: decimal.NewFromInt(10), Description: "10% off the cart subtotal"},
		Rule{Code: "DESCONTO5", Percent: decimal.NewFromInt(5), Description: "5% off the cart subtotal"},
	)
}

// FindByCode looks up a rule by code (case-insensitive). Returns
// ErrInvalidCoupon when the code is not known.
func (r *StaticRepository) FindByCode(_ context.Context, code string) (*Rule, error) {
	rule, ok := r.rules[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, ErrInvalidCoupon
	}
	return &rule, nil
}

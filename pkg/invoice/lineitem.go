package invoice

import "github.com/shopspring/decimal"

// LineItem is one billable row of a job. The line total is a pure
// function of hours and rate, computed once at construction; the item is
// immutable afterwards.
type LineItem struct {
	description string
	hours       decimal.Decimal
	rate        decimal.Decimal
	lineTotal   decimal.Decimal
}

// NewLineItem validates the inputs and derives the line total.
func NewLineItem(description string, hours, rate decimal.Decimal) (LineItem, error) {
	if description == "" {
		return LineItem{}, &MissingFieldError{Field: "description"}
	}
	if hours.IsNegative() {
		return LineItem{}, &InvalidFieldError{Field: "hours", Reason: "must not be negative"}
	}
	if rate.IsNegative() {
		return LineItem{}, &InvalidFieldError{Field: "rate", Reason: "must not be negative"}
	}
	return LineItem{
		description: description,
		hours:       hours,
		rate:        rate,
		lineTotal:   hours.Mul(rate),
	}, nil
}

// Description returns the free-text description of the work.
func (li LineItem) Description() string { return li.description }

// Hours returns the billed quantity.
func (li LineItem) Hours() decimal.Decimal { return li.hours }

// Rate returns the currency amount billed per hour.
func (li LineItem) Rate() decimal.Decimal { return li.rate }

// LineTotal returns hours multiplied by rate.
func (li LineItem) LineTotal() decimal.Decimal { return li.lineTotal }

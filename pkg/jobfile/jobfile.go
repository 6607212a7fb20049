// Package jobfile decodes the flat job documents consumed by the batch
// runner and the HTTP surface, and builds invoice jobs from them.
package jobfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/invoicing-service/pkg/invoice"
	"github.com/invoicing-service/pkg/party"
)

// paymentURL prefixes a paypal_id to form the job's payment link.
const paymentURL = "https://www.paypal.com/invoice/p/"

// LineEntry is one line-item object of a job document. Hours and Rate are
// pointers so that an absent key can be told apart from an explicit zero.
type LineEntry struct {
	Description string           `json:"description"`
	Hours       *decimal.Decimal `json:"hours"`
	Rate        *decimal.Decimal `json:"rate"`
}

// Record is the decoded form of one job document. Optional keys take
// their zero values: shipping defaults to off, discounts and tax to zero,
// reference and paypal_id to empty.
type Record struct {
	Date      string          `json:"date"`
	Sender    string          `json:"sender"`
	Recipient string          `json:"recipient"`
	LineItems []LineEntry     `json:"line_items"`
	Discounts decimal.Decimal `json:"discounts"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  bool            `json:"shipping"`
	PaypalID  string          `json:"paypal_id"`
	Reference string          `json:"reference"`
}

// Decode parses one job document. Only syntactic failures are reported
// here; field validation happens in Build.
func Decode(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode job document: %w", err)
	}
	return &rec, nil
}

// Build resolves the record's party names through cat and constructs the
// invoice job. Required fields missing from the record surface as
// *invoice.MissingFieldError, with the line-item index in the field name
// where one applies.
func (rec *Record) Build(cat *party.Catalog) (*invoice.Job, error) {
	if rec.Sender == "" {
		return nil, &invoice.MissingFieldError{Field: "sender"}
	}
	if rec.Recipient == "" {
		return nil, &invoice.MissingFieldError{Field: "recipient"}
	}
	sender, err := cat.Sender(rec.Sender)
	if err != nil {
		return nil, err
	}
	recipient, err := cat.Recipient(rec.Recipient)
	if err != nil {
		return nil, err
	}

	items := make([]invoice.LineItem, 0, len(rec.LineItems))
	for i, e := range rec.LineItems {
		if e.Hours == nil {
			return nil, &invoice.MissingFieldError{Field: fmt.Sprintf("line_items[%d].hours", i)}
		}
		if e.Rate == nil {
			return nil, &invoice.MissingFieldError{Field: fmt.Sprintf("line_items[%d].rate", i)}
		}
		li, err := invoice.NewLineItem(e.Description, *e.Hours, *e.Rate)
		if err != nil {
			return nil, fmt.Errorf("line_items[%d]: %w", i, err)
		}
		items = append(items, li)
	}

	var link string
	if rec.PaypalID != "" {
		link = paymentURL + rec.PaypalID
	}

	return invoice.NewJob(invoice.JobParams{
		Date:        rec.Date,
		Sender:      sender,
		Recipient:   recipient,
		LineItems:   items,
		Discount:    rec.Discounts,
		Tax:         rec.Tax,
		Reference:   rec.Reference,
		PaymentLink: link,
		Shipping:    rec.Shipping,
	})
}

// Package invoice computes the financial identity of a billing job: its
// deterministic invoice number, due date, and totals.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicing-service/pkg/party"
)

// JobParams carries the inputs for a Job. Sender and Recipient are shared
// read-only references owned by the party catalog; the line items are
// copied into the job.
type JobParams struct {
	Date        string
	Sender      *party.Sender
	Recipient   *party.Recipient
	LineItems   []LineItem
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Reference   string
	PaymentLink string
	Shipping    bool
}

// Job is one billing job, frozen at construction. The invoice number,
// subtotal and total are derived exactly once by NewJob; changing the
// underlying line items requires reconstructing the job.
type Job struct {
	date        time.Time
	rawDate     string
	sender      *party.Sender
	recipient   *party.Recipient
	items       []LineItem
	discount    decimal.Decimal
	tax         decimal.Decimal
	reference   string
	paymentLink string
	shipping    bool

	number   int64
	subtotal decimal.Decimal
	total    decimal.Decimal
}

// NewJob validates p and freezes the derived fields. Required fields
// missing from p surface as *MissingFieldError before any computation.
func NewJob(p JobParams) (*Job, error) {
	if p.Date == "" {
		return nil, &MissingFieldError{Field: "date"}
	}
	if p.Sender == nil {
		return nil, &MissingFieldError{Field: "sender"}
	}
	if p.Recipient == nil {
		return nil, &MissingFieldError{Field: "recipient"}
	}
	date, err := ParseDate(p.Date)
	if err != nil {
		return nil, &InvalidFieldError{Field: "date", Reason: err.Error()}
	}

	items := make([]LineItem, len(p.LineItems))
	copy(items, p.LineItems)

	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal())
	}

	return &Job{
		date:        date,
		rawDate:     p.Date,
		sender:      p.Sender,
		recipient:   p.Recipient,
		items:       items,
		discount:    p.Discount,
		tax:         p.Tax,
		reference:   p.Reference,
		paymentLink: p.PaymentLink,
		shipping:    p.Shipping,
		number:      AssignNumber(p.Date, p.Recipient.Company),
		subtotal:    subtotal,
		total:       subtotal.Sub(p.Discount).Add(p.Tax),
	}, nil
}

// IssueDate returns the parsed issue date.
func (j *Job) IssueDate() time.Time { return j.date }

// DateString returns the issue date exactly as it appeared in the input;
// this is the form hashed into the invoice number and embedded in the
// output file name.
func (j *Job) DateString() string { return j.rawDate }

// Sender returns the issuing party record.
func (j *Job) Sender() *party.Sender { return j.sender }

// Recipient returns the billed party record.
func (j *Job) Recipient() *party.Recipient { return j.recipient }

// Items returns a copy of the job's line items in insertion order.
func (j *Job) Items() []LineItem {
	items := make([]LineItem, len(j.items))
	copy(items, j.items)
	return items
}

// Discount returns the flat discount amount.
func (j *Job) Discount() decimal.Decimal { return j.discount }

// Tax returns the flat tax amount.
func (j *Job) Tax() decimal.Decimal { return j.tax }

// Reference returns the optional free-text reference note.
func (j *Job) Reference() string { return j.reference }

// PaymentLink returns the optional payment URL.
func (j *Job) PaymentLink() string { return j.paymentLink }

// Shipping reports whether the shipping column is populated on the
// rendered document.
func (j *Job) Shipping() bool { return j.shipping }

// InvoiceNumber returns the derived eight-digit invoice number.
func (j *Job) InvoiceNumber() int64 { return j.number }

// Subtotal returns the sum of all line totals.
func (j *Job) Subtotal() decimal.Decimal { return j.subtotal }

// Total returns subtotal minus discount plus tax. Negative totals are
// permitted.
func (j *Job) Total() decimal.Decimal { return j.total }

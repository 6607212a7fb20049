// Package party holds the sender and recipient records that invoices are
// issued between. Records are immutable once loaded and safe to share
// across any number of jobs.
package party

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// MalformedRecordError reports a record source that could not be parsed as
// a key-value mapping.
type MalformedRecordError struct {
	Path string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed record: %v", e.Err)
	}
	return fmt.Sprintf("malformed record %s: %v", e.Path, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Sender identifies the party issuing an invoice.
type Sender struct {
	Name    string
	Role    string
	Street  string
	City    string
	State   string
	Country string
	Zip     string
	Phone   string
	Email   string
	Website string
}

// Recipient identifies the party being billed.
type Recipient struct {
	Name    string
	Company string
	Street  string
	City    string
	State   string
	Country string
	Zip     string
	Phone   string
}

// ShippingBlock returns the ordered display lines used for both the
// billing and shipping columns of an invoice.
func (r *Recipient) ShippingBlock() [5]string {
	return [5]string{
		r.Name,
		r.Company,
		r.Street,
		fmt.Sprintf("%s, %s %s", r.City, r.State, r.Zip),
		r.Phone,
	}
}

// LoadSender parses a sender record from a JSON key-value source. Absent
// fields default to the empty string; zip codes and similar scalars may
// arrive as JSON numbers and are stringified.
func LoadSender(r io.Reader) (*Sender, error) {
	kv, err := decodeRecord(r)
	if err != nil {
		return nil, err
	}
	return &Sender{
		Name:    kv.str("name"),
		Role:    kv.str("role"),
		Street:  kv.str("street"),
		City:    kv.str("city"),
		State:   kv.str("state"),
		Country: kv.str("country"),
		Zip:     kv.str("zip"),
		Phone:   kv.str("phone"),
		Email:   kv.str("email"),
		Website: kv.str("website"),
	}, nil
}

// LoadRecipient parses a recipient record from a JSON key-value source
// with the same defaulting rules as LoadSender.
func LoadRecipient(r io.Reader) (*Recipient, error) {
	kv, err := decodeRecord(r)
	if err != nil {
		return nil, err
	}
	return &Recipient{
		Name:    kv.str("name"),
		Company: kv.str("company"),
		Street:  kv.str("street"),
		City:    kv.str("city"),
		State:   kv.str("state"),
		Country: kv.str("country"),
		Zip:     kv.str("zip"),
		Phone:   kv.str("phone"),
	}, nil
}

type record map[string]any

func decodeRecord(r io.Reader) (record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var kv record
	if err := dec.Decode(&kv); err != nil {
		return nil, &MalformedRecordError{Err: err}
	}
	return kv, nil
}

func (kv record) str(key string) string {
	switch v := kv[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

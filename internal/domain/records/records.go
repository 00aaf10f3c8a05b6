// Package records defines the two record shapes the reconciler operates on:
// bank transactions and invoice/receipt attachments.
//
// Both are immutable inputs supplied wholesale by the caller (API request
// body, JSON import, or the record store). The matching engine reads them
// but never creates or mutates them.
package records

import "time"

// DateLayout is the calendar date format used on both record types.
const DateLayout = "2006-01-02"

// Transaction is a settled bank payment. Negative amounts are outgoing,
// positive amounts incoming. Date, Reference and Contact are optional;
// empty strings mean the field is absent.
type Transaction struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date,omitempty"`
	Reference string  `json:"reference,omitempty"`
	Contact   string  `json:"contact,omitempty"`
}

// ParsedDate returns the transaction date as a calendar date.
// Missing or unparsable dates report ok=false, never an error.
func (t *Transaction) ParsedDate() (time.Time, bool) {
	return ParseDate(t.Date)
}

// Attachment is an invoice or receipt with structured extracted fields.
type Attachment struct {
	ID   int64          `json:"id"`
	Data AttachmentData `json:"data"`
}

// AttachmentData holds the extracted invoice fields. TotalAmount is always
// positive; the three counterparty name fields and the dates are optional.
type AttachmentData struct {
	Supplier      string  `json:"supplier,omitempty"`
	Issuer        string  `json:"issuer,omitempty"`
	Recipient     string  `json:"recipient,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
	Reference     string  `json:"reference,omitempty"`
	DueDate       string  `json:"due_date,omitempty"`
	InvoicingDate string  `json:"invoicing_date,omitempty"`
	ReceivingDate string  `json:"receiving_date,omitempty"`
}

// Dates returns every attachment date that parses, in due/invoicing/receiving
// order. Attachments with no parseable date return an empty slice.
func (a *Attachment) Dates() []time.Time {
	var out []time.Time
	for _, raw := range []string{a.Data.DueDate, a.Data.InvoicingDate, a.Data.ReceivingDate} {
		if d, ok := ParseDate(raw); ok {
			out = append(out, d)
		}
	}
	return out
}

// ParseDate parses a YYYY-MM-DD date. Empty or malformed input is treated
// as absent information, not as an error.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

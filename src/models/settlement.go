package models

import (
	"fmt"
	"time"
)

// SettlementRow is one external sale line after normalization. A parser
// adapter produces it from a raw export row; it is immutable afterwards and
// is only persisted as part of a MatchResult.
type SettlementRow struct {
	Platform     PlatformKey `json:"platform"`
	ExternalRef  string      `json:"external_ref,omitempty"` // platform booking reference, may be absent
	ProductCode  string      `json:"product_code"`
	TourDate     time.Time   `json:"tour_date"`
	CustomerName string      `json:"customer_name"` // normalized form, used for matching
	RawName      string      `json:"raw_name"`      // name exactly as printed in the export
	Units        int         `json:"units"`
	PriceCents   int64       `json:"price_cents"` // quoted total price in euro cents
	SourceLine   int         `json:"source_line"` // 1-based line in the uploaded file
}

// DisplayDate renders the tour date in the system's canonical calendar form.
func (r SettlementRow) DisplayDate() string {
	return r.TourDate.Format(time.DateOnly)
}

// DisplayPrice renders the quoted price in euros with two decimals.
func (r SettlementRow) DisplayPrice() string {
	sign := ""
	cents := r.PriceCents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// RowError records one malformed input row. It never aborts a batch; the
// operator sees the collected list next to the parsed rows.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseResult is the output of one platform adapter over one uploaded file.
type ParseResult struct {
	Rows   []SettlementRow `json:"rows"`
	Errors []RowError      `json:"errors"`
}

// Reservation is the system's own booking record. The engine reads a
// candidate window of these and never mutates them, except to flip the
// settled indicator on confirmation.
type Reservation struct {
	ID           int64       `json:"id"`
	Platform     PlatformKey `json:"platform"`
	ProductCode  string      `json:"product_code"`
	TourDate     time.Time   `json:"tour_date"`
	CustomerName string      `json:"customer_name"`
	Units        int         `json:"units"`
	Status       string      `json:"status"`
	Settled      bool        `json:"settled"`
}

// ProductPrice maps a platform product to its expected unit price over a
// validity window. Read-only reference data.
type ProductPrice struct {
	Platform       PlatformKey `json:"platform"`
	ProductCode    string      `json:"product_code"`
	UnitPriceCents int64       `json:"unit_price_cents"`
	ValidFrom      time.Time   `json:"valid_from"`
	ValidTo        time.Time   `json:"valid_to"`
}

// Covers reports whether the price row is valid on the given date.
func (p ProductPrice) Covers(date time.Time) bool {
	return !date.Before(p.ValidFrom) && !date.After(p.ValidTo)
}

package models

import (
	"fmt"
	"time"
)

// MatchTag classifies the outcome of matching one settlement row.
type MatchTag string

const (
	TagMatched       MatchTag = "MATCHED"
	TagPriceMismatch MatchTag = "PRICE_MISMATCH"
	TagAmbiguous     MatchTag = "AMBIGUOUS"
	TagUnmatched     MatchTag = "UNMATCHED"
)

// MatchResult is the outcome of matching one SettlementRow against the
// candidate reservation window.
//
// Candidates holds the reservation IDs that survived the tie-break filters:
// exactly one for MATCHED and PRICE_MISMATCH, two or more for AMBIGUOUS,
// none for UNMATCHED.
type MatchResult struct {
	Tag           MatchTag      `json:"tag"`
	Row           SettlementRow `json:"row"`
	Candidates    []int64       `json:"candidates,omitempty"`
	ExpectedCents int64         `json:"expected_cents"` // expected total price, 0 when no price row applied
	DeltaCents    int64         `json:"delta_cents"`    // reported minus expected, signed
}

// ReservationID returns the single chosen reservation for MATCHED and
// PRICE_MISMATCH results, or 0 for the other tags.
func (m MatchResult) ReservationID() int64 {
	if (m.Tag == TagMatched || m.Tag == TagPriceMismatch) && len(m.Candidates) == 1 {
		return m.Candidates[0]
	}
	return 0
}

// Validate enforces the tag/candidate-count invariants.
func (m MatchResult) Validate() error {
	switch m.Tag {
	case TagMatched, TagPriceMismatch:
		if len(m.Candidates) != 1 {
			return fmt.Errorf("%s result must carry exactly one candidate, got %d", m.Tag, len(m.Candidates))
		}
	case TagAmbiguous:
		if len(m.Candidates) < 2 {
			return fmt.Errorf("AMBIGUOUS result must carry at least two candidates, got %d", len(m.Candidates))
		}
	case TagUnmatched:
		if len(m.Candidates) != 0 {
			return fmt.Errorf("UNMATCHED result must carry no candidates, got %d", len(m.Candidates))
		}
	default:
		return fmt.Errorf("unknown match tag %q", m.Tag)
	}
	return nil
}

// BatchStatus is the confirmation state of a settlement batch.
type BatchStatus string

const (
	BatchDraft     BatchStatus = "draft"
	BatchConfirmed BatchStatus = "confirmed" // terminal
)

// SettlementBatch is the unit of confirmation: one platform and period,
// carrying the full match result list for operator review and audit.
type SettlementBatch struct {
	ID          string        `json:"id"`
	Platform    PlatformKey   `json:"platform"`
	PeriodStart time.Time     `json:"period_start"`
	PeriodEnd   time.Time     `json:"period_end"`
	Status      BatchStatus   `json:"status"`
	Results     []MatchResult `json:"results,omitempty"`
	RowErrors   []RowError    `json:"row_errors,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
}

// AmbiguousLines returns the source line numbers of all AMBIGUOUS results,
// for the confirmation-block validation message.
func (b *SettlementBatch) AmbiguousLines() []int {
	var lines []int
	for _, res := range b.Results {
		if res.Tag == TagAmbiguous {
			lines = append(lines, res.Row.SourceLine)
		}
	}
	return lines
}

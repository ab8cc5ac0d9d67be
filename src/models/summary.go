package models

// SummaryBucket aggregates match results for one platform and tour date.
// Ambiguous and unmatched rows are counted but contribute nothing to the
// revenue sums, so the summary never misrepresents settled revenue.
type SummaryBucket struct {
	Platform           PlatformKey `json:"platform"`
	Date               string      `json:"date"` // tour date, YYYY-MM-DD
	MatchedCount       int         `json:"matched_count"`
	PriceMismatchCount int         `json:"price_mismatch_count"`
	AmbiguousCount     int         `json:"ambiguous_count"`
	UnmatchedCount     int         `json:"unmatched_count"`
	ReportedCents      int64       `json:"reported_cents"`
	ExpectedCents      int64       `json:"expected_cents"`
	DeltaCents         int64       `json:"delta_cents"` // reported minus expected, signed
}

// SettlementSummary is the per-batch aggregate shown to the operator before
// confirmation. Derived data: recomputed on every batch, never mutated.
type SettlementSummary struct {
	Buckets []SummaryBucket `json:"buckets"`
	Totals  SummaryBucket   `json:"totals"` // Platform/Date empty; sums over all buckets
}

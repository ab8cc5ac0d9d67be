// backend/src/processors/summary_aggregator.go
package processors

import (
	"sort"

	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/utils"
)

// SummaryAggregator rolls a completed list of match results into the
// per-platform, per-tour-date summary the operator reviews before
// confirming. Pure function of its input; recomputed on every batch.
type SummaryAggregator struct{}

func NewSummaryAggregator() *SummaryAggregator { return &SummaryAggregator{} }

// Aggregate groups results by platform and tour date. Only MATCHED and
// PRICE_MISMATCH rows contribute to the reported/expected revenue sums;
// ambiguous and unmatched rows are counted so the operator sees them, but
// they never inflate settled revenue. The totals equal the sum of the
// bucket totals.
func (a *SummaryAggregator) Aggregate(results []models.MatchResult) models.SettlementSummary {
	type bucketKey struct {
		platform models.PlatformKey
		date     string
	}

	buckets := make(map[bucketKey]*models.SummaryBucket)
	for _, res := range results {
		key := bucketKey{platform: res.Row.Platform, date: utils.DateKey(res.Row.TourDate)}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.SummaryBucket{Platform: key.platform, Date: key.date}
			buckets[key] = bucket
		}

		switch res.Tag {
		case models.TagMatched:
			bucket.MatchedCount++
		case models.TagPriceMismatch:
			bucket.PriceMismatchCount++
		case models.TagAmbiguous:
			bucket.AmbiguousCount++
		case models.TagUnmatched:
			bucket.UnmatchedCount++
		}

		if res.Tag == models.TagMatched || res.Tag == models.TagPriceMismatch {
			bucket.ReportedCents += res.Row.PriceCents
			bucket.ExpectedCents += res.ExpectedCents
			bucket.DeltaCents += res.Row.PriceCents - res.ExpectedCents
		}
	}

	summary := models.SettlementSummary{Buckets: make([]models.SummaryBucket, 0, len(buckets))}
	for _, bucket := range buckets {
		summary.Buckets = append(summary.Buckets, *bucket)
	}
	sort.Slice(summary.Buckets, func(i, j int) bool {
		if summary.Buckets[i].Platform != summary.Buckets[j].Platform {
			return summary.Buckets[i].Platform < summary.Buckets[j].Platform
		}
		return summary.Buckets[i].Date < summary.Buckets[j].Date
	})

	for _, bucket := range summary.Buckets {
		summary.Totals.MatchedCount += bucket.MatchedCount
		summary.Totals.PriceMismatchCount += bucket.PriceMismatchCount
		summary.Totals.AmbiguousCount += bucket.AmbiguousCount
		summary.Totals.UnmatchedCount += bucket.UnmatchedCount
		summary.Totals.ReportedCents += bucket.ReportedCents
		summary.Totals.ExpectedCents += bucket.ExpectedCents
		summary.Totals.DeltaCents += bucket.DeltaCents
	}
	return summary
}

package processors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/processors"
)

func resultAt(platform models.PlatformKey, day time.Time, tag models.MatchTag, reported, expected int64) models.MatchResult {
	res := models.MatchResult{
		Tag: tag,
		Row: models.SettlementRow{
			Platform:   platform,
			TourDate:   day,
			Units:      2,
			PriceCents: reported,
		},
	}
	if tag == models.TagMatched || tag == models.TagPriceMismatch {
		res.Candidates = []int64{1}
		res.ExpectedCents = expected
		res.DeltaCents = reported - expected
	}
	return res
}

func TestAggregate_GroupsByPlatformAndDate(t *testing.T) {
	feb10 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	feb11 := feb10.AddDate(0, 0, 1)

	results := []models.MatchResult{
		resultAt(models.PlatformKlook, feb10, models.TagMatched, 20000, 20000),
		resultAt(models.PlatformKlook, feb10, models.TagPriceMismatch, 20000, 18000),
		resultAt(models.PlatformKlook, feb11, models.TagMatched, 9000, 9000),
		resultAt(models.PlatformViator, feb10, models.TagAmbiguous, 5000, 0),
		resultAt(models.PlatformViator, feb10, models.TagUnmatched, 7000, 0),
	}

	summary := processors.NewSummaryAggregator().Aggregate(results)
	require.Len(t, summary.Buckets, 3)

	// Sorted by platform then date.
	assert.Equal(t, models.PlatformKlook, summary.Buckets[0].Platform)
	assert.Equal(t, "2026-02-10", summary.Buckets[0].Date)
	assert.Equal(t, models.PlatformKlook, summary.Buckets[1].Platform)
	assert.Equal(t, "2026-02-11", summary.Buckets[1].Date)
	assert.Equal(t, models.PlatformViator, summary.Buckets[2].Platform)

	first := summary.Buckets[0]
	assert.Equal(t, 1, first.MatchedCount)
	assert.Equal(t, 1, first.PriceMismatchCount)
	assert.Equal(t, int64(40000), first.ReportedCents)
	assert.Equal(t, int64(38000), first.ExpectedCents)
	assert.Equal(t, int64(2000), first.DeltaCents)
}

// Ambiguous and unmatched rows are visible in the counts but never move the
// revenue sums.
func TestAggregate_UnresolvedRowsCarryNoRevenue(t *testing.T) {
	feb10 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	results := []models.MatchResult{
		resultAt(models.PlatformViator, feb10, models.TagAmbiguous, 5000, 0),
		resultAt(models.PlatformViator, feb10, models.TagUnmatched, 7000, 0),
	}

	summary := processors.NewSummaryAggregator().Aggregate(results)
	require.Len(t, summary.Buckets, 1)

	bucket := summary.Buckets[0]
	assert.Equal(t, 1, bucket.AmbiguousCount)
	assert.Equal(t, 1, bucket.UnmatchedCount)
	assert.Zero(t, bucket.ReportedCents)
	assert.Zero(t, bucket.ExpectedCents)
	assert.Zero(t, bucket.DeltaCents)
}

func TestAggregate_TotalsEqualSumOfBuckets(t *testing.T) {
	feb10 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	feb12 := feb10.AddDate(0, 0, 2)

	results := []models.MatchResult{
		resultAt(models.PlatformKlook, feb10, models.TagMatched, 20000, 20000),
		resultAt(models.PlatformGetYourGuide, feb12, models.TagPriceMismatch, 10000, 12000),
		resultAt(models.PlatformViator, feb10, models.TagUnmatched, 7000, 0),
	}

	summary := processors.NewSummaryAggregator().Aggregate(results)

	var want models.SummaryBucket
	for _, bucket := range summary.Buckets {
		want.MatchedCount += bucket.MatchedCount
		want.PriceMismatchCount += bucket.PriceMismatchCount
		want.AmbiguousCount += bucket.AmbiguousCount
		want.UnmatchedCount += bucket.UnmatchedCount
		want.ReportedCents += bucket.ReportedCents
		want.ExpectedCents += bucket.ExpectedCents
		want.DeltaCents += bucket.DeltaCents
	}
	assert.Equal(t, want, summary.Totals)
	assert.Equal(t, int64(30000), summary.Totals.ReportedCents)
	assert.Equal(t, int64(-2000), summary.Totals.DeltaCents)
}

func TestAggregate_EmptyInput(t *testing.T) {
	summary := processors.NewSummaryAggregator().Aggregate(nil)
	assert.Empty(t, summary.Buckets)
	assert.Equal(t, models.SummaryBucket{}, summary.Totals)
}

package processors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/processors"
)

var feb10 = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func makeRow(name string, units int, priceCents int64) models.SettlementRow {
	return models.SettlementRow{
		Platform:     models.PlatformKlook,
		ExternalRef:  "KLK-1001",
		ProductCode:  "ACT-200",
		TourDate:     feb10,
		CustomerName: name,
		RawName:      name,
		Units:        units,
		PriceCents:   priceCents,
		SourceLine:   2,
	}
}

func makeReservation(id int64, name string, units int) models.Reservation {
	return models.Reservation{
		ID:           id,
		Platform:     models.PlatformKlook,
		ProductCode:  "ACT-200",
		TourDate:     feb10,
		CustomerName: name,
		Units:        units,
		Status:       "active",
	}
}

func makePrice(unitCents int64) models.ProductPrice {
	return models.ProductPrice{
		Platform:       models.PlatformKlook,
		ProductCode:    "ACT-200",
		UnitPriceCents: unitCents,
		ValidFrom:      feb10.AddDate(0, -1, 0),
		ValidTo:        feb10.AddDate(0, 1, 0),
	}
}

func TestMatch_ExactMatchWithinTolerance(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{makeReservation(7, "john smith", 2)}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, models.TagMatched, got.Tag)
	assert.Equal(t, []int64{7}, got.Candidates)
	assert.Equal(t, int64(20000), got.ExpectedCents)
	assert.Equal(t, int64(0), got.DeltaCents)
	assert.NoError(t, got.Validate())
}

func TestMatch_PriceMismatchCarriesDelta(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{makeReservation(7, "john smith", 2)}
	prices := []models.ProductPrice{makePrice(9000)} // expected 18000

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, models.TagPriceMismatch, got.Tag)
	assert.Equal(t, []int64{7}, got.Candidates)
	assert.Equal(t, int64(18000), got.ExpectedCents)
	assert.Equal(t, int64(2000), got.DeltaCents)
	assert.NoError(t, got.Validate())
}

func TestMatch_UnitCountBreaksNameTie(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{
		makeReservation(7, "john smith", 2),
		makeReservation(8, "john smith", 3),
	}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, models.TagMatched, got.Tag)
	assert.Equal(t, []int64{7}, got.Candidates)
}

func TestMatch_NoCandidatesIsUnmatched(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}

	results := engine.Match(rows, nil, []models.ProductPrice{makePrice(10000)})
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, models.TagUnmatched, got.Tag)
	assert.Empty(t, got.Candidates)
	assert.Zero(t, got.ExpectedCents)
	assert.Zero(t, got.DeltaCents)
	assert.NoError(t, got.Validate())
}

func TestMatch_IdenticalCandidatesAreAmbiguous(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{
		makeReservation(7, "john smith", 2),
		makeReservation(8, "john smith", 2),
	}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, models.TagAmbiguous, got.Tag)
	assert.Equal(t, []int64{7, 8}, got.Candidates)
	assert.Zero(t, got.ExpectedCents)
	assert.NoError(t, got.Validate())
}

// Once a reservation is consumed by one row it leaves the pool, so a second
// identical row cannot settle against the same booking.
func TestMatch_ReservationConsumedOnlyOnce(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{
		makeRow("john smith", 2, 20000),
		makeRow("john smith", 2, 20000),
	}
	reservations := []models.Reservation{makeReservation(7, "john smith", 2)}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 2)
	assert.Equal(t, models.TagMatched, results[0].Tag)
	assert.Equal(t, models.TagUnmatched, results[1].Tag)
}

func TestMatch_NormalizedNamesCompareEqual(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{makeReservation(7, "john   smith", 2)}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)
	assert.Equal(t, models.TagMatched, results[0].Tag)
}

func TestMatch_ContainmentFallback(t *testing.T) {
	rows := []models.SettlementRow{makeRow("smith", 2, 20000)}
	reservations := []models.Reservation{makeReservation(7, "john smith", 2)}
	prices := []models.ProductPrice{makePrice(10000)}

	t.Run("enabled", func(t *testing.T) {
		engine := processors.NewMatchEngine(processors.MatchPolicy{AllowContainment: true})

		results := engine.Match(rows, reservations, prices)
		require.Len(t, results, 1)
		assert.Equal(t, models.TagMatched, results[0].Tag)
	})

	t.Run("disabled", func(t *testing.T) {
		engine := processors.NewMatchEngine(processors.MatchPolicy{AllowContainment: false})

		results := engine.Match(rows, reservations, prices)
		require.Len(t, results, 1)
		assert.Equal(t, models.TagUnmatched, results[0].Tag)
	})
}

func TestMatch_ExactNameBeatsContainment(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{
		makeReservation(7, "john smithson", 2),
		makeReservation(8, "john smith", 2),
	}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)
	assert.Equal(t, models.TagMatched, results[0].Tag)
	assert.Equal(t, []int64{8}, results[0].Candidates)
}

func TestMatch_DifferentPlatformOrDateExcluded(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	otherPlatform := makeReservation(7, "john smith", 2)
	otherPlatform.Platform = models.PlatformViator
	otherDay := makeReservation(8, "john smith", 2)
	otherDay.TourDate = feb10.AddDate(0, 0, 1)

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	results := engine.Match(rows, []models.Reservation{otherPlatform, otherDay}, []models.ProductPrice{makePrice(10000)})
	require.Len(t, results, 1)
	assert.Equal(t, models.TagUnmatched, results[0].Tag)
}

func TestMatch_MissingPriceRowIsMismatch(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{makeReservation(7, "john smith", 2)}

	results := engine.Match(rows, reservations, nil)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, models.TagPriceMismatch, got.Tag)
	assert.Equal(t, []int64{7}, got.Candidates)
	assert.Zero(t, got.ExpectedCents)
	assert.Equal(t, int64(20000), got.DeltaCents)
}

func TestMatch_ToleranceAbsorbsSmallDelta(t *testing.T) {
	engine := processors.NewMatchEngine(processors.MatchPolicy{ToleranceCents: 50, AllowContainment: true})

	rows := []models.SettlementRow{makeRow("john smith", 2, 20030)}
	reservations := []models.Reservation{makeReservation(7, "john smith", 2)}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)
	assert.Equal(t, models.TagMatched, results[0].Tag)
	assert.Equal(t, int64(30), results[0].DeltaCents)
}

// The unit filter only narrows; when no candidate has the reported unit
// count the name-stage tie stays ambiguous instead of collapsing to zero.
func TestMatch_UnitFilterNeverEmptiesCandidates(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	rows := []models.SettlementRow{makeRow("john smith", 5, 20000)}
	reservations := []models.Reservation{
		makeReservation(7, "john smith", 2),
		makeReservation(8, "john smith", 3),
	}
	prices := []models.ProductPrice{makePrice(10000)}

	results := engine.Match(rows, reservations, prices)
	require.Len(t, results, 1)
	assert.Equal(t, models.TagAmbiguous, results[0].Tag)
	assert.Equal(t, []int64{7, 8}, results[0].Candidates)
}

func TestMatch_PriceValidityWindowRespected(t *testing.T) {
	engine := processors.NewMatchEngine(processors.DefaultMatchPolicy())

	expired := makePrice(5000)
	expired.ValidFrom = feb10.AddDate(-1, 0, 0)
	expired.ValidTo = feb10.AddDate(0, 0, -1)
	current := makePrice(10000)

	rows := []models.SettlementRow{makeRow("john smith", 2, 20000)}
	reservations := []models.Reservation{makeReservation(7, "john smith", 2)}

	results := engine.Match(rows, reservations, []models.ProductPrice{expired, current})
	require.Len(t, results, 1)
	assert.Equal(t, models.TagMatched, results[0].Tag)
	assert.Equal(t, int64(20000), results[0].ExpectedCents)
}

// backend/src/processors/match_engine.go
package processors

import (
	"sort"
	"strings"

	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/utils"
)

// MatchPolicy tunes the name-matching fallback and price tolerance. The
// containment fallback and punctuation stripping are configurable pending
// product-owner confirmation of the exact export quirks.
type MatchPolicy struct {
	ToleranceCents   int64 // allowed |reported - expected| before PRICE_MISMATCH
	AllowContainment bool  // substring fallback for truncated/reordered names
	StripPunctuation bool  // strip punctuation before comparing names
}

// DefaultMatchPolicy mirrors the production configuration defaults.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{
		ToleranceCents:   0,
		AllowContainment: true,
		StripPunctuation: false,
	}
}

// MatchEngine deterministically matches settlement rows against a pinned
// snapshot of reservations and product prices. Reference data is always
// passed in as arguments, never held as ambient state, so a batch can be
// re-matched reproducibly for auditing.
type MatchEngine struct {
	policy MatchPolicy
}

func NewMatchEngine(policy MatchPolicy) *MatchEngine {
	return &MatchEngine{policy: policy}
}

// Match classifies every settlement row against the candidate reservation
// window. A reservation is consumed by at most one MATCHED/PRICE_MISMATCH
// result per batch: once assigned it leaves the candidate pool, so one
// reservation can never satisfy two export rows.
func (e *MatchEngine) Match(rows []models.SettlementRow, reservations []models.Reservation, prices []models.ProductPrice) []models.MatchResult {
	pool := make(map[int64]models.Reservation, len(reservations))
	for _, resv := range reservations {
		pool[resv.ID] = resv
	}

	results := make([]models.MatchResult, 0, len(rows))
	for _, row := range rows {
		result := e.matchRow(row, pool, prices)
		if id := result.ReservationID(); id != 0 {
			delete(pool, id)
		}
		results = append(results, result)
	}
	return results
}

// matchRow applies the tie-break pipeline: platform/date filter, normalized
// name equality (with optional containment fallback), then unit count as the
// final disambiguator.
func (e *MatchEngine) matchRow(row models.SettlementRow, pool map[int64]models.Reservation, prices []models.ProductPrice) models.MatchResult {
	candidates := e.dateCandidates(row, pool)
	if len(candidates) == 0 {
		return models.MatchResult{Tag: models.TagUnmatched, Row: row}
	}

	candidates = e.nameFilter(row, candidates)
	if len(candidates) == 0 {
		// Date candidates existed but none carried a comparable name.
		return models.MatchResult{Tag: models.TagUnmatched, Row: row}
	}

	if len(candidates) > 1 {
		if narrowed := unitFilter(row.Units, candidates); len(narrowed) >= 1 {
			candidates = narrowed
		}
	}

	if len(candidates) > 1 {
		ids := candidateIDs(candidates)
		return models.MatchResult{Tag: models.TagAmbiguous, Row: row, Candidates: ids}
	}

	chosen := candidates[0]
	expected, priced := expectedPrice(prices, row)
	delta := row.PriceCents - expected

	tag := models.TagMatched
	if !priced || utils.AbsInt64(delta) > e.policy.ToleranceCents {
		// A missing price row is surfaced as a mismatch rather than a
		// silently clean match: the operator has to look at it either way.
		tag = models.TagPriceMismatch
	}

	return models.MatchResult{
		Tag:           tag,
		Row:           row,
		Candidates:    []int64{chosen.ID},
		ExpectedCents: expected,
		DeltaCents:    delta,
	}
}

func (e *MatchEngine) dateCandidates(row models.SettlementRow, pool map[int64]models.Reservation) []models.Reservation {
	var candidates []models.Reservation
	for _, resv := range pool {
		if resv.Platform != row.Platform {
			continue
		}
		if !utils.SameDay(resv.TourDate, row.TourDate) {
			continue
		}
		candidates = append(candidates, resv)
	}
	// Deterministic order regardless of map iteration.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates
}

func (e *MatchEngine) nameFilter(row models.SettlementRow, candidates []models.Reservation) []models.Reservation {
	rowName := e.comparableName(row.CustomerName)

	var exact []models.Reservation
	for _, resv := range candidates {
		if e.comparableName(resv.CustomerName) == rowName {
			exact = append(exact, resv)
		}
	}
	if len(exact) > 0 || !e.policy.AllowContainment {
		return exact
	}

	// Containment in either direction tolerates truncated or reordered
	// export names; anything fuzzier is deliberately off the table to
	// bound false positives.
	var contained []models.Reservation
	for _, resv := range candidates {
		resvName := e.comparableName(resv.CustomerName)
		if rowName == "" || resvName == "" {
			continue
		}
		if strings.Contains(resvName, rowName) || strings.Contains(rowName, resvName) {
			contained = append(contained, resv)
		}
	}
	return contained
}

func (e *MatchEngine) comparableName(name string) string {
	if e.policy.StripPunctuation {
		return utils.StripNamePunctuation(name)
	}
	return utils.NormalizeName(name)
}

func unitFilter(units int, candidates []models.Reservation) []models.Reservation {
	var narrowed []models.Reservation
	for _, resv := range candidates {
		if resv.Units == units {
			narrowed = append(narrowed, resv)
		}
	}
	return narrowed
}

func candidateIDs(candidates []models.Reservation) []int64 {
	ids := make([]int64, 0, len(candidates))
	for _, resv := range candidates {
		ids = append(ids, resv.ID)
	}
	return ids
}

// expectedPrice looks up the product price valid on the row's tour date and
// scales it by the unit count. The second return is false when no price row
// covers the product/date.
func expectedPrice(prices []models.ProductPrice, row models.SettlementRow) (int64, bool) {
	for _, price := range prices {
		if price.Platform != row.Platform || price.ProductCode != row.ProductCode {
			continue
		}
		if price.Covers(row.TourDate) {
			return price.UnitPriceCents * int64(row.Units), true
		}
	}
	return 0, false
}

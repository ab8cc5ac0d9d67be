// backend/src/services/reference_service.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/username/tourdesk/backend/src/logger"
	"github.com/username/tourdesk/backend/src/models"
)

// referenceLoaderImpl fetches the product price table and the candidate
// reservation window concurrently. The reservation window is padded by a
// configurable number of days to absorb off-by-one-day export quirks.
type referenceLoaderImpl struct {
	store       ReferenceStore
	paddingDays int
	timeout     time.Duration
}

func NewReferenceLoader(store ReferenceStore, paddingDays int, timeout time.Duration) ReferenceLoader {
	return &referenceLoaderImpl{
		store:       store,
		paddingDays: paddingDays,
		timeout:     timeout,
	}
}

// Load returns once both fetches complete. Either failure (including a
// deadline hit) fails the whole load: matching against an incomplete
// reservation set would under-report legitimate rows as unmatched.
func (l *referenceLoaderImpl) Load(ctx context.Context, platform models.PlatformKey, periodStart, periodEnd time.Time) (*ReferenceData, error) {
	windowStart := periodStart.AddDate(0, 0, -l.paddingDays)
	windowEnd := periodEnd.AddDate(0, 0, l.paddingDays)

	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var (
		wg           sync.WaitGroup
		prices       []models.ProductPrice
		reservations []models.Reservation
		priceErr     error
		resvErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		prices, priceErr = l.store.FetchProductPrices(fetchCtx, platform, windowStart, windowEnd)
	}()
	go func() {
		defer wg.Done()
		reservations, resvErr = l.store.FetchReservations(fetchCtx, platform, windowStart, windowEnd)
	}()
	wg.Wait()

	if priceErr != nil {
		logger.L.Error("Product price fetch failed", "platform", platform, "error", priceErr)
		return nil, fmt.Errorf("%w: prices: %v", models.ErrReferenceFetch, priceErr)
	}
	if resvErr != nil {
		logger.L.Error("Reservation window fetch failed", "platform", platform, "error", resvErr)
		return nil, fmt.Errorf("%w: reservations: %v", models.ErrReferenceFetch, resvErr)
	}

	logger.L.Debug("Reference data loaded",
		"platform", platform,
		"windowStart", windowStart.Format(time.DateOnly),
		"windowEnd", windowEnd.Format(time.DateOnly),
		"prices", len(prices),
		"reservations", len(reservations))

	return &ReferenceData{Prices: prices, Reservations: reservations}, nil
}

package services_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tourdesk/backend/src/logger"
	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/services"
	"github.com/username/tourdesk/backend/src/services/mocks"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestLoad_FetchesBothSetsWithPaddedWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockReferenceStore(ctrl)
	loader := services.NewReferenceLoader(store, 1, 5*time.Second)

	periodStart := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	windowStart := periodStart.AddDate(0, 0, -1)
	windowEnd := periodEnd.AddDate(0, 0, 1)

	prices := []models.ProductPrice{{Platform: models.PlatformKlook, ProductCode: "ACT-200", UnitPriceCents: 10000}}
	reservations := []models.Reservation{{ID: 7, Platform: models.PlatformKlook}}

	store.EXPECT().
		FetchProductPrices(gomock.Any(), models.PlatformKlook, windowStart, windowEnd).
		Return(prices, nil)
	store.EXPECT().
		FetchReservations(gomock.Any(), models.PlatformKlook, windowStart, windowEnd).
		Return(reservations, nil)

	data, err := loader.Load(context.Background(), models.PlatformKlook, periodStart, periodEnd)
	require.NoError(t, err)
	assert.Equal(t, prices, data.Prices)
	assert.Equal(t, reservations, data.Reservations)
}

func TestLoad_PriceFetchFailureFailsWholeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockReferenceStore(ctrl)
	loader := services.NewReferenceLoader(store, 0, 5*time.Second)

	periodStart := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	store.EXPECT().
		FetchProductPrices(gomock.Any(), models.PlatformViator, periodStart, periodEnd).
		Return(nil, errors.New("connection refused"))
	store.EXPECT().
		FetchReservations(gomock.Any(), models.PlatformViator, periodStart, periodEnd).
		Return([]models.Reservation{}, nil)

	data, err := loader.Load(context.Background(), models.PlatformViator, periodStart, periodEnd)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, models.ErrReferenceFetch)
}

func TestLoad_ReservationFetchFailureFailsWholeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockReferenceStore(ctrl)
	loader := services.NewReferenceLoader(store, 0, 5*time.Second)

	periodStart := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	store.EXPECT().
		FetchProductPrices(gomock.Any(), models.PlatformViator, periodStart, periodEnd).
		Return([]models.ProductPrice{}, nil)
	store.EXPECT().
		FetchReservations(gomock.Any(), models.PlatformViator, periodStart, periodEnd).
		Return(nil, errors.New("query timeout"))

	data, err := loader.Load(context.Background(), models.PlatformViator, periodStart, periodEnd)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, models.ErrReferenceFetch)
}

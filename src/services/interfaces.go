// backend/src/services/interfaces.go
package services

import (
	"context"
	"io"
	"time"

	"github.com/username/tourdesk/backend/src/models"
)

// UploadResult is the response for one processed settlement upload: the
// per-row parse errors, the full match result list, and the derived
// summary, all keyed by the draft batch they were stored under.
type UploadResult struct {
	BatchID     string                   `json:"batch_id"`
	Platform    models.PlatformKey       `json:"platform"`
	ParseErrors []models.RowError        `json:"parse_errors"`
	Results     []models.MatchResult     `json:"results"`
	Summary     models.SettlementSummary `json:"summary"`
}

// ReferenceStore provides read-consistent snapshots of the two reference
// data sets a batch is matched against. Both fetches honor the context
// deadline; no partial results are ever returned.
//
//go:generate mockgen -destination=mocks/mock_stores.go -package=mocks -source=interfaces.go
type ReferenceStore interface {
	FetchProductPrices(ctx context.Context, platform models.PlatformKey, from, to time.Time) ([]models.ProductPrice, error)
	FetchReservations(ctx context.Context, platform models.PlatformKey, from, to time.Time) ([]models.Reservation, error)
}

// BatchStore persists settlement batches and performs the atomic
// confirmation transition.
type BatchStore interface {
	InsertDraftBatch(ctx context.Context, batch *models.SettlementBatch) error
	RecordUpload(ctx context.Context, batchID, filename string, fileSize int64, rowCount, errorCount int) error
	GetBatchByID(ctx context.Context, id string) (*models.SettlementBatch, error)
	ListBatches(ctx context.Context, limit int) ([]models.SettlementBatch, error)
	ConfirmBatch(ctx context.Context, id string, confirmedAt time.Time) error
}

// ReferenceData is the pinned snapshot a batch is matched against.
type ReferenceData struct {
	Prices       []models.ProductPrice
	Reservations []models.Reservation
}

// ReferenceLoader fetches the price table and the candidate reservation
// window for one batch. The two fetches run concurrently; either failure
// fails the whole load.
type ReferenceLoader interface {
	Load(ctx context.Context, platform models.PlatformKey, periodStart, periodEnd time.Time) (*ReferenceData, error)
}

// SettlementService is the operator-facing surface of the reconciliation
// engine: process an upload into a reviewable draft batch, expose batches
// and summaries for review, and confirm a batch exactly once.
type SettlementService interface {
	ProcessUpload(ctx context.Context, fileReader io.Reader, platform models.PlatformKey, periodStart, periodEnd time.Time, filename string, filesize int64) (*UploadResult, error)
	GetBatch(ctx context.Context, id string) (*models.SettlementBatch, error)
	ListBatches(ctx context.Context, limit int) ([]models.SettlementBatch, error)
	GetSummary(ctx context.Context, id string) (*models.SettlementSummary, error)
	ConfirmBatch(ctx context.Context, id string) (*models.SettlementBatch, error)
}

// backend/src/services/sql_store.go
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/username/tourdesk/backend/src/model"
	"github.com/username/tourdesk/backend/src/models"
)

// sqlReferenceStore adapts the model package to the ReferenceStore
// interface over the shared database handle.
type sqlReferenceStore struct {
	db *sql.DB
}

func NewSQLReferenceStore(db *sql.DB) ReferenceStore {
	return &sqlReferenceStore{db: db}
}

func (s *sqlReferenceStore) FetchProductPrices(ctx context.Context, platform models.PlatformKey, from, to time.Time) ([]models.ProductPrice, error) {
	return model.GetProductPrices(ctx, s.db, platform, from, to)
}

func (s *sqlReferenceStore) FetchReservations(ctx context.Context, platform models.PlatformKey, from, to time.Time) ([]models.Reservation, error) {
	return model.GetReservationsForWindow(ctx, s.db, platform, from, to)
}

// sqlBatchStore adapts the model package to the BatchStore interface.
type sqlBatchStore struct {
	db *sql.DB
}

func NewSQLBatchStore(db *sql.DB) BatchStore {
	return &sqlBatchStore{db: db}
}

func (s *sqlBatchStore) InsertDraftBatch(ctx context.Context, batch *models.SettlementBatch) error {
	return model.InsertDraftBatch(ctx, s.db, batch)
}

func (s *sqlBatchStore) RecordUpload(ctx context.Context, batchID, filename string, fileSize int64, rowCount, errorCount int) error {
	return model.RecordUpload(ctx, s.db, batchID, filename, fileSize, rowCount, errorCount)
}

func (s *sqlBatchStore) GetBatchByID(ctx context.Context, id string) (*models.SettlementBatch, error) {
	return model.GetBatchByID(ctx, s.db, id)
}

func (s *sqlBatchStore) ListBatches(ctx context.Context, limit int) ([]models.SettlementBatch, error) {
	return model.ListBatches(ctx, s.db, limit)
}

func (s *sqlBatchStore) ConfirmBatch(ctx context.Context, id string, confirmedAt time.Time) error {
	return model.ConfirmBatch(ctx, s.db, id, confirmedAt)
}

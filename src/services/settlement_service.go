// backend/src/services/settlement_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/tourdesk/backend/src/logger"
	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/parsers"
	"github.com/username/tourdesk/backend/src/processors"
)

const (
	ckBatchSummary         = "res_batch_summary_%s"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// ErrParsingFailed wraps any parse failure that is not an unsupported
// format, so handlers can distinguish operator mistakes from bad files.
var ErrParsingFailed = errors.New("settlement file parsing failed")

type settlementServiceImpl struct {
	refLoader   ReferenceLoader
	matchEngine *processors.MatchEngine
	aggregator  *processors.SummaryAggregator
	batchStore  BatchStore
	reportCache *cache.Cache
}

func NewSettlementService(
	refLoader ReferenceLoader,
	matchEngine *processors.MatchEngine,
	aggregator *processors.SummaryAggregator,
	batchStore BatchStore,
	reportCache *cache.Cache,
) SettlementService {
	return &settlementServiceImpl{
		refLoader:   refLoader,
		matchEngine: matchEngine,
		aggregator:  aggregator,
		batchStore:  batchStore,
		reportCache: reportCache,
	}
}

// ProcessUpload runs one settlement batch end to end: parse and reference
// load run concurrently (both are read-only and independent), then the
// match engine joins them, the aggregator summarizes, and the draft batch
// is stored for review.
func (s *settlementServiceImpl) ProcessUpload(ctx context.Context, fileReader io.Reader, platform models.PlatformKey, periodStart, periodEnd time.Time, filename string, filesize int64) (*UploadResult, error) {
	overallStartTime := time.Now()
	logger.L.Info("ProcessUpload START", "platform", platform, "filename", filename,
		"periodStart", periodStart.Format(time.DateOnly), "periodEnd", periodEnd.Format(time.DateOnly))

	parser, err := parsers.GetParser(platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	var (
		wg          sync.WaitGroup
		parseResult models.ParseResult
		parseErr    error
		refData     *ReferenceData
		refErr      error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		parseResult, parseErr = parser.Parse(fileReader)
	}()
	go func() {
		defer wg.Done()
		refData, refErr = s.refLoader.Load(ctx, platform, periodStart, periodEnd)
	}()
	wg.Wait()

	if parseErr != nil {
		if errors.Is(parseErr, models.ErrUnsupportedFormat) {
			return nil, parseErr
		}
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, parseErr)
	}
	if refErr != nil {
		return nil, refErr
	}

	results := s.matchEngine.Match(parseResult.Rows, refData.Reservations, refData.Prices)
	summary := s.aggregator.Aggregate(results)

	batch := &models.SettlementBatch{
		ID:          uuid.New().String(),
		Platform:    platform,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      models.BatchDraft,
		Results:     results,
		RowErrors:   parseResult.Errors,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.batchStore.InsertDraftBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("error storing draft batch: %w", err)
	}
	if err := s.batchStore.RecordUpload(ctx, batch.ID, filename, filesize, len(parseResult.Rows), len(parseResult.Errors)); err != nil {
		logger.L.Error("Failed to record upload in history", "batchID", batch.ID, "error", err)
	}

	s.reportCache.Set(fmt.Sprintf(ckBatchSummary, batch.ID), &summary, DefaultCacheExpiration)

	logger.L.Info("ProcessUpload END", "platform", platform, "batchID", batch.ID,
		"rows", len(parseResult.Rows), "rowErrors", len(parseResult.Errors),
		"duration", time.Since(overallStartTime))

	return &UploadResult{
		BatchID:     batch.ID,
		Platform:    platform,
		ParseErrors: parseResult.Errors,
		Results:     results,
		Summary:     summary,
	}, nil
}

func (s *settlementServiceImpl) GetBatch(ctx context.Context, id string) (*models.SettlementBatch, error) {
	return s.batchStore.GetBatchByID(ctx, id)
}

func (s *settlementServiceImpl) ListBatches(ctx context.Context, limit int) ([]models.SettlementBatch, error) {
	return s.batchStore.ListBatches(ctx, limit)
}

// GetSummary recomputes (or serves from cache) the aggregate for one batch.
func (s *settlementServiceImpl) GetSummary(ctx context.Context, id string) (*models.SettlementSummary, error) {
	cacheKey := fmt.Sprintf(ckBatchSummary, id)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.SettlementSummary), nil
	}
	batch, err := s.batchStore.GetBatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := s.aggregator.Aggregate(batch.Results)
	s.reportCache.Set(cacheKey, &summary, DefaultCacheExpiration)
	return &summary, nil
}

// ConfirmBatch transitions a draft batch to Confirmed exactly once. The
// ambiguity pre-check here produces the row listing for the operator; the
// store re-enforces every guard inside the transaction.
func (s *settlementServiceImpl) ConfirmBatch(ctx context.Context, id string) (*models.SettlementBatch, error) {
	batch, err := s.batchStore.GetBatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch.Status == models.BatchConfirmed {
		return nil, fmt.Errorf("%w: %s", models.ErrBatchAlreadyConfirmed, id)
	}
	if lines := batch.AmbiguousLines(); len(lines) > 0 {
		return nil, fmt.Errorf("%w: lines %v must be resolved first", models.ErrAmbiguousRows, lines)
	}

	if err := s.batchStore.ConfirmBatch(ctx, id, time.Now().UTC()); err != nil {
		return nil, err
	}
	s.reportCache.Delete(fmt.Sprintf(ckBatchSummary, id))
	logger.L.Info("Settlement batch confirmed", "batchID", id, "platform", batch.Platform)

	return s.batchStore.GetBatchByID(ctx, id)
}

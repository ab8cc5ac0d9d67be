package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/username/tourdesk/backend/src/models"
)

// InsertDraftBatch persists a freshly matched batch and its full result
// list in one transaction, for operator review and later audit.
func InsertDraftBatch(ctx context.Context, db *sql.DB, batch *models.SettlementBatch) error {
	rowErrorsJSON, err := json.Marshal(batch.RowErrors)
	if err != nil {
		return fmt.Errorf("error marshaling row errors for batch %s: %w", batch.ID, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning batch insert transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO settlement_batches (id, platform, period_start, period_end, status, row_errors, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		batch.ID, string(batch.Platform),
		batch.PeriodStart.Format(time.DateOnly), batch.PeriodEnd.Format(time.DateOnly),
		string(batch.Status), string(rowErrorsJSON), batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting settlement batch %s: %w", batch.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO settlement_results
		(batch_id, tag, platform, external_ref, product_code, tour_date, customer_name, raw_name,
		units, price_cents, source_line, candidate_ids, expected_cents, delta_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing result insert statement: %w", err)
	}
	defer stmt.Close()

	for _, res := range batch.Results {
		candidateJSON, err := json.Marshal(res.Candidates)
		if err != nil {
			return fmt.Errorf("error marshaling candidates for line %d: %w", res.Row.SourceLine, err)
		}
		_, err = stmt.Exec(
			batch.ID, string(res.Tag), string(res.Row.Platform), res.Row.ExternalRef,
			res.Row.ProductCode, res.Row.TourDate.Format(time.DateOnly),
			res.Row.CustomerName, res.Row.RawName, res.Row.Units, res.Row.PriceCents,
			res.Row.SourceLine, string(candidateJSON), res.ExpectedCents, res.DeltaCents,
		)
		if err != nil {
			return fmt.Errorf("error inserting match result (line %d): %w", res.Row.SourceLine, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing batch insert: %w", err)
	}
	return nil
}

// RecordUpload appends one row to the uploads audit history.
func RecordUpload(ctx context.Context, db *sql.DB, batchID, filename string, fileSize int64, rowCount, errorCount int) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO uploads_history (batch_id, filename, file_size, row_count, error_count)
		 VALUES (?, ?, ?, ?, ?)`,
		batchID, filename, fileSize, rowCount, errorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record upload in history: %w", err)
	}
	return nil
}

// GetBatchByID loads one batch including its full match result list.
func GetBatchByID(ctx context.Context, db *sql.DB, id string) (*models.SettlementBatch, error) {
	batch := &models.SettlementBatch{ID: id}
	var platform, periodStart, periodEnd, status, rowErrorsJSON string
	var confirmedAt sql.NullTime
	err := db.QueryRowContext(ctx,
		`SELECT platform, period_start, period_end, status, row_errors, created_at, confirmed_at
		 FROM settlement_batches WHERE id = ?`, id,
	).Scan(&platform, &periodStart, &periodEnd, &status, &rowErrorsJSON, &batch.CreatedAt, &confirmedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrBatchNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading settlement batch %s: %w", id, err)
	}

	batch.Platform = models.PlatformKey(platform)
	batch.Status = models.BatchStatus(status)
	if batch.PeriodStart, err = time.Parse(time.DateOnly, periodStart); err != nil {
		return nil, fmt.Errorf("invalid period_start for batch %s: %w", id, err)
	}
	if batch.PeriodEnd, err = time.Parse(time.DateOnly, periodEnd); err != nil {
		return nil, fmt.Errorf("invalid period_end for batch %s: %w", id, err)
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		batch.ConfirmedAt = &t
	}
	if err := json.Unmarshal([]byte(rowErrorsJSON), &batch.RowErrors); err != nil {
		return nil, fmt.Errorf("invalid row_errors payload for batch %s: %w", id, err)
	}

	batch.Results, err = getBatchResults(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func getBatchResults(ctx context.Context, db *sql.DB, batchID string) ([]models.MatchResult, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT tag, platform, external_ref, product_code, tour_date, customer_name, raw_name,
		        units, price_cents, source_line, candidate_ids, expected_cents, delta_cents
		 FROM settlement_results WHERE batch_id = ? ORDER BY source_line ASC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("error querying results for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	var results []models.MatchResult
	for rows.Next() {
		var res models.MatchResult
		var tag, platform, tourDate, candidateJSON string
		var externalRef sql.NullString
		if err := rows.Scan(&tag, &platform, &externalRef, &res.Row.ProductCode, &tourDate,
			&res.Row.CustomerName, &res.Row.RawName, &res.Row.Units, &res.Row.PriceCents,
			&res.Row.SourceLine, &candidateJSON, &res.ExpectedCents, &res.DeltaCents); err != nil {
			return nil, fmt.Errorf("error scanning result row for batch %s: %w", batchID, err)
		}
		res.Tag = models.MatchTag(tag)
		res.Row.Platform = models.PlatformKey(platform)
		res.Row.ExternalRef = externalRef.String
		if res.Row.TourDate, err = time.Parse(time.DateOnly, tourDate); err != nil {
			return nil, fmt.Errorf("invalid tour_date in result for batch %s: %w", batchID, err)
		}
		if err := json.Unmarshal([]byte(candidateJSON), &res.Candidates); err != nil {
			return nil, fmt.Errorf("invalid candidate_ids payload for batch %s: %w", batchID, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ListBatches returns batch headers (no result lists), newest first.
func ListBatches(ctx context.Context, db *sql.DB, limit int) ([]models.SettlementBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, platform, period_start, period_end, status, created_at, confirmed_at
		 FROM settlement_batches ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing settlement batches: %w", err)
	}
	defer rows.Close()

	var batches []models.SettlementBatch
	for rows.Next() {
		var batch models.SettlementBatch
		var platform, periodStart, periodEnd, status string
		var confirmedAt sql.NullTime
		if err := rows.Scan(&batch.ID, &platform, &periodStart, &periodEnd, &status, &batch.CreatedAt, &confirmedAt); err != nil {
			return nil, fmt.Errorf("error scanning settlement batch row: %w", err)
		}
		batch.Platform = models.PlatformKey(platform)
		batch.Status = models.BatchStatus(status)
		if batch.PeriodStart, err = time.Parse(time.DateOnly, periodStart); err != nil {
			return nil, fmt.Errorf("invalid period_start for batch %s: %w", batch.ID, err)
		}
		if batch.PeriodEnd, err = time.Parse(time.DateOnly, periodEnd); err != nil {
			return nil, fmt.Errorf("invalid period_end for batch %s: %w", batch.ID, err)
		}
		if confirmedAt.Valid {
			t := confirmedAt.Time
			batch.ConfirmedAt = &t
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

// ConfirmBatch performs the Draft -> Confirmed transition atomically: the
// status flip, the confirmation timestamp, and every reservation's settled
// compare-and-set happen in one transaction, or none of them do.
func ConfirmBatch(ctx context.Context, db *sql.DB, batchID string, confirmedAt time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning confirmation transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM settlement_batches WHERE id = ?`, batchID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", models.ErrBatchNotFound, batchID)
	}
	if err != nil {
		return fmt.Errorf("error loading batch %s for confirmation: %w", batchID, err)
	}
	if models.BatchStatus(status) == models.BatchConfirmed {
		return fmt.Errorf("%w: %s", models.ErrBatchAlreadyConfirmed, batchID)
	}

	// Re-check the ambiguity guard inside the transaction; the service
	// checks it first for a friendlier message, but this is the contract.
	var ambiguous int
	err = tx.QueryRow(`SELECT COUNT(*) FROM settlement_results WHERE batch_id = ? AND tag = ?`,
		batchID, string(models.TagAmbiguous)).Scan(&ambiguous)
	if err != nil {
		return fmt.Errorf("error counting ambiguous rows for batch %s: %w", batchID, err)
	}
	if ambiguous > 0 {
		return fmt.Errorf("%w: batch %s has %d unresolved rows", models.ErrAmbiguousRows, batchID, ambiguous)
	}

	// Settle every matched reservation with a per-reservation CAS.
	rows, err := tx.Query(
		`SELECT candidate_ids FROM settlement_results WHERE batch_id = ? AND tag IN (?, ?)`,
		batchID, string(models.TagMatched), string(models.TagPriceMismatch))
	if err != nil {
		return fmt.Errorf("error loading matched results for batch %s: %w", batchID, err)
	}
	var reservationIDs []int64
	for rows.Next() {
		var candidateJSON string
		if err := rows.Scan(&candidateJSON); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning matched result for batch %s: %w", batchID, err)
		}
		var candidates []int64
		if err := json.Unmarshal([]byte(candidateJSON), &candidates); err != nil || len(candidates) != 1 {
			rows.Close()
			return fmt.Errorf("corrupt candidate_ids payload for batch %s", batchID)
		}
		reservationIDs = append(reservationIDs, candidates[0])
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating matched results for batch %s: %w", batchID, err)
	}
	rows.Close()

	for _, reservationID := range reservationIDs {
		if err := MarkReservationSettledTx(tx, reservationID, batchID); err != nil {
			return err
		}
	}

	res, err := tx.Exec(
		`UPDATE settlement_batches SET status = ?, confirmed_at = ? WHERE id = ? AND status = ?`,
		string(models.BatchConfirmed), confirmedAt, batchID, string(models.BatchDraft),
	)
	if err != nil {
		return fmt.Errorf("error confirming batch %s: %w", batchID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading confirmation result for batch %s: %w", batchID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", models.ErrBatchAlreadyConfirmed, batchID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing confirmation for batch %s: %w", batchID, err)
	}
	return nil
}

package model

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/username/tourdesk/backend/src/models"
)

// GetReservationsForWindow returns the candidate reservation set for one
// platform within the padded date window, read as one consistent snapshot.
// Settled reservations are excluded up front: they can never be claimed by
// another batch.
func GetReservationsForWindow(ctx context.Context, db *sql.DB, platform models.PlatformKey, from, to time.Time) ([]models.Reservation, error) {
	query := `
		SELECT id, platform, product_code, tour_date, customer_name, units, status, settled
		FROM reservations
		WHERE platform = ? AND settled = 0 AND tour_date >= ? AND tour_date <= ?
		ORDER BY tour_date ASC, id ASC`
	rows, err := db.QueryContext(ctx, query, string(platform), from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("error querying reservations for platform %s: %w", platform, err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var resv models.Reservation
		var tourDate string
		var settled int
		if err := rows.Scan(&resv.ID, &resv.Platform, &resv.ProductCode, &tourDate, &resv.CustomerName, &resv.Units, &resv.Status, &settled); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		date, err := time.Parse(time.DateOnly, tourDate)
		if err != nil {
			return nil, fmt.Errorf("invalid tour_date %q for reservation %d: %w", tourDate, resv.ID, err)
		}
		resv.TourDate = date
		resv.Settled = settled != 0
		reservations = append(reservations, resv)
	}
	return reservations, rows.Err()
}

// MarkReservationSettledTx flips the settled indicator via compare-and-set
// inside the confirmation transaction. Zero rows affected means another
// batch settled the reservation since this batch was matched; the caller
// must abort the whole confirmation.
func MarkReservationSettledTx(tx *sql.Tx, reservationID int64, batchID string) error {
	res, err := tx.Exec(
		`UPDATE reservations SET settled = 1, settled_batch_id = ? WHERE id = ? AND settled = 0`,
		batchID, reservationID,
	)
	if err != nil {
		return fmt.Errorf("error settling reservation %d: %w", reservationID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading settle result for reservation %d: %w", reservationID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: reservation %d", models.ErrSettlementConflict, reservationID)
	}
	return nil
}

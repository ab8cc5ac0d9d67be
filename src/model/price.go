package model

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/username/tourdesk/backend/src/models"
)

// GetProductPrices returns the price table slice for one platform whose
// validity windows overlap the given date range.
func GetProductPrices(ctx context.Context, db *sql.DB, platform models.PlatformKey, from, to time.Time) ([]models.ProductPrice, error) {
	query := `
		SELECT platform, product_code, unit_price_cents, valid_from, valid_to
		FROM product_prices
		WHERE platform = ? AND valid_from <= ? AND valid_to >= ?
		ORDER BY product_code ASC, valid_from ASC`
	rows, err := db.QueryContext(ctx, query, string(platform), to.Format(time.DateOnly), from.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("error querying product prices for platform %s: %w", platform, err)
	}
	defer rows.Close()

	var prices []models.ProductPrice
	for rows.Next() {
		var price models.ProductPrice
		var validFrom, validTo string
		if err := rows.Scan(&price.Platform, &price.ProductCode, &price.UnitPriceCents, &validFrom, &validTo); err != nil {
			return nil, fmt.Errorf("error scanning product price row: %w", err)
		}
		from, err := time.Parse(time.DateOnly, validFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_from %q for product %s: %w", validFrom, price.ProductCode, err)
		}
		to, err := time.Parse(time.DateOnly, validTo)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_to %q for product %s: %w", validTo, price.ProductCode, err)
		}
		price.ValidFrom = from
		price.ValidTo = to
		prices = append(prices, price)
	}
	return prices, rows.Err()
}

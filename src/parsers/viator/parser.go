// backend/src/parsers/viator/parser.go
package viator

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/utils"
)

// Viator exports are comma-separated with US-style dates (M/D/Y) and
// amounts carrying thousands separators, e.g. "1,234.56".
const (
	colBookingReference = "booking reference"
	colProductCode      = "product code"
	colTravelDate       = "travel date"
	colTravelerName     = "traveler name"
	colPax              = "pax"
	colNetRate          = "net rate (eur)"
)

var requiredColumns = []string{colBookingReference, colProductCode, colTravelDate, colTravelerName, colPax, colNetRate}

const dateLayout = "01/02/2006"

// ViatorParser implements the parsers.Parser interface for Viator exports.
type ViatorParser struct{}

// NewParser creates a new instance of the ViatorParser.
func NewParser() *ViatorParser {
	return &ViatorParser{}
}

func (p *ViatorParser) Parse(file io.Reader) (models.ParseResult, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("%w: viator parser: failed to read CSV header: %v", models.ErrUnsupportedFormat, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return models.ParseResult{}, fmt.Errorf("%w: viator export missing column %q", models.ErrUnsupportedFormat, required)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("viator parser: failed to read CSV records: %w", err)
	}

	var result models.ParseResult
	for i, record := range records {
		line := i + 2
		field := func(name string) string {
			idx := columns[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		date, err := time.Parse(dateLayout, field(colTravelDate))
		if err != nil {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: fmt.Sprintf("invalid travel date %q", field(colTravelDate))})
			continue
		}

		rawName := field(colTravelerName)
		if rawName == "" {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: "missing traveler name"})
			continue
		}

		units, err := strconv.Atoi(field(colPax))
		if err != nil || units <= 0 {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: fmt.Sprintf("invalid pax count %q", field(colPax))})
			continue
		}

		priceCents, err := parseCents(field(colNetRate))
		if err != nil {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: fmt.Sprintf("invalid net rate %q", field(colNetRate))})
			continue
		}

		result.Rows = append(result.Rows, models.SettlementRow{
			Platform:     models.PlatformViator,
			ExternalRef:  field(colBookingReference),
			ProductCode:  field(colProductCode),
			TourDate:     utils.TruncateToDay(date),
			CustomerName: utils.NormalizeName(rawName),
			RawName:      rawName,
			Units:        units,
			PriceCents:   priceCents,
			SourceLine:   line,
		})
	}
	return result, nil
}

// parseCents converts a US-formatted euro amount ("1,234.56") to integer cents.
func parseCents(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.Trim(s, "\" "), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	negative := strings.HasPrefix(cleaned, "-")
	if negative {
		cleaned = cleaned[1:]
	}
	whole, frac, _ := strings.Cut(cleaned, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("too many decimal places in %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	euros, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}
	total := euros*100 + cents
	if negative {
		total = -total
	}
	return total, nil
}

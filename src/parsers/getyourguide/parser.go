// backend/src/parsers/getyourguide/parser.go
package getyourguide

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

// GetYourGuide exports are semicolon-separated with European dates
// ("02.01.2006") and European decimals ("1.234,56").
const (
	colReference = "reference"
	colProduct   = "product"
	colDate      = "date"
	colCustomer  = "customer"
	colQuantity  = "quantity"
	colAmount    = "amount"
)

var requiredColumns = []string{colReference, colProduct, colDate, colCustomer, colQuantity, colAmount}

const dateLayout = "02.01.2006"

// GetYourGuideParser implements the parsers.Parser interface for
// GetYourGuide sales exports.
type GetYourGuideParser struct{}

// NewParser creates a new instance of the GetYourGuideParser.
func NewParser() *GetYourGuideParser {
	return &GetYourGuideParser{}
}

func (p *GetYourGuideParser) Parse(file io.Reader) (models.ParseResult, error) {
	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("%w: getyourguide parser: failed to read CSV header: %v", models.ErrUnsupportedFormat, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return models.ParseResult{}, fmt.Errorf("%w: getyourguide export missing column %q", models.ErrUnsupportedFormat, required)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("getyourguide parser: failed to read CSV records: %w", err)
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

		date, err := time.Parse(dateLayout, field(colDate))
		if err != nil {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: fmt.Sprintf("invalid date %q", field(colDate))})
			continue
		}

		rawName := field(colCustomer)
		if rawName == "" {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: "missing customer name"})
			continue
		}

		units, err := strconv.Atoi(field(colQuantity))
		if err != nil || units <= 0 {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: fmt.Sprintf("invalid quantity %q", field(colQuantity))})
			continue
		}

		priceCents, err := parseCents(field(colAmount))
		if err != nil {
			result.Errors = append(result.Errors, models.RowError{Line: line, Reason: fmt.Sprintf("invalid amount %q", field(colAmount))})
			continue
		}

		result.Rows = append(result.Rows, models.SettlementRow{
			Platform:     models.PlatformGetYourGuide,
			ExternalRef:  field(colReference),
			ProductCode:  field(colProduct),
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

// parseCents converts a European-formatted euro amount ("1.234,56") to
// integer cents.
func parseCents(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
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

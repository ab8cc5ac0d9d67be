// backend/src/parsers/klook/parser.go
package klook

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

// Klook sales exports are comma-separated, ISO dates, dot-decimal amounts.
const (
	colBookingRef = "booking ref"
	colActivityID = "activity id"
	colDate       = "participation date"
	colCustomer   = "customer name"
	colUnits      = "units"
	colAmount     = "amount (eur)"
)

var requiredColumns = []string{colBookingRef, colActivityID, colDate, colCustomer, colUnits, colAmount}

const dateLayout = "2006-01-02"

// KlookParser implements the parsers.Parser interface for Klook sales exports.
type KlookParser struct{}

// NewParser creates a new instance of the KlookParser.
func NewParser() *KlookParser {
	return &KlookParser{}
}

// Parse reads a Klook settlement CSV and converts its rows into normalized
// settlement rows. Malformed data rows are collected as RowErrors.
func (p *KlookParser) Parse(file io.Reader) (models.ParseResult, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	header, err := reader.Read()
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("%w: klook parser: failed to read CSV header: %v", models.ErrUnsupportedFormat, err)
	}

	columns, err := mapHeader(header)
	if err != nil {
		return models.ParseResult{}, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("klook parser: failed to read CSV records: %w", err)
	}

	var result models.ParseResult
	for i, record := range records {
		line := i + 2 // header occupies line 1
		row, rowErr := parseRecord(record, columns, line)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// mapHeader resolves the required column names to indices. An unrecognized
// header set fails the whole parse so the operator can re-select the
// platform or file.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: klook export missing column %q", models.ErrUnsupportedFormat, required)
		}
	}
	return columns, nil
}

func parseRecord(record []string, columns map[string]int, line int) (models.SettlementRow, *models.RowError) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := time.Parse(dateLayout, field(colDate))
	if err != nil {
		return models.SettlementRow{}, &models.RowError{Line: line, Reason: fmt.Sprintf("invalid participation date %q", field(colDate))}
	}

	rawName := field(colCustomer)
	if rawName == "" {
		return models.SettlementRow{}, &models.RowError{Line: line, Reason: "missing customer name"}
	}

	units, err := strconv.Atoi(field(colUnits))
	if err != nil || units <= 0 {
		return models.SettlementRow{}, &models.RowError{Line: line, Reason: fmt.Sprintf("invalid unit count %q", field(colUnits))}
	}

	priceCents, err := parseCents(field(colAmount))
	if err != nil {
		return models.SettlementRow{}, &models.RowError{Line: line, Reason: fmt.Sprintf("invalid amount %q", field(colAmount))}
	}

	return models.SettlementRow{
		Platform:     models.PlatformKlook,
		ExternalRef:  field(colBookingRef),
		ProductCode:  field(colActivityID),
		TourDate:     utils.TruncateToDay(date),
		CustomerName: utils.NormalizeName(rawName),
		RawName:      rawName,
		Units:        units,
		PriceCents:   priceCents,
		SourceLine:   line,
	}, nil
}

// parseCents converts a dot-decimal euro amount to integer cents without
// going through floating point.
func parseCents(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
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

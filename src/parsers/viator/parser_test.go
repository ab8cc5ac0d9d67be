package viator_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/parsers/viator"
)

func TestParse_USDatesAndThousandsSeparators(t *testing.T) {
	input := `Booking Reference,Product Code,Travel Date,Traveler Name,Pax,Net Rate (EUR)
BR-9001,TOUR-10,02/10/2026,JOHN SMITH,2,"1,234.56"
BR-9002,TOUR-11,12/01/2026,Maria Silva,4,89.50
`
	parser := viator.NewParser()

	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Empty(t, result.Errors)

	first := result.Rows[0]
	assert.Equal(t, models.PlatformViator, first.Platform)
	// M/D/Y, so 02/10 is February 10th, not October 2nd.
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), first.TourDate)
	assert.Equal(t, int64(123456), first.PriceCents)
	assert.Equal(t, "john smith", first.CustomerName)

	second := result.Rows[1]
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), second.TourDate)
	assert.Equal(t, int64(8950), second.PriceCents)
}

func TestParse_RowErrorsCarrySourceLine(t *testing.T) {
	input := `Booking Reference,Product Code,Travel Date,Traveler Name,Pax,Net Rate (EUR)
BR-9001,TOUR-10,2026-02-10,John Smith,2,200.00
BR-9002,TOUR-10,02/10/2026,John Smith,0,200.00
`
	parser := viator.NewParser()

	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Reason, "travel date")
	assert.Equal(t, 3, result.Errors[1].Line)
	assert.Contains(t, result.Errors[1].Reason, "pax count")
}

func TestParse_WrongHeaderRejected(t *testing.T) {
	input := `Reference;Product;Date;Customer;Quantity;Amount
GYG-1;T-1;10.02.2026;John;1;200,00
`
	parser := viator.NewParser()

	_, err := parser.Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

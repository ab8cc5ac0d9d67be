package getyourguide_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/parsers/getyourguide"
)

func TestParse_EuropeanDatesAndDecimals(t *testing.T) {
	input := `Reference;Product;Date;Customer;Quantity;Amount
GYG-501;TOUR-20;10.02.2026;JOHN SMITH;2;1.234,56
GYG-502;TOUR-21;01.12.2026;Ana Costa;1;89,50
`
	parser := getyourguide.NewParser()

	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Empty(t, result.Errors)

	first := result.Rows[0]
	assert.Equal(t, models.PlatformGetYourGuide, first.Platform)
	// D.M.Y, so 10.02 is February 10th.
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), first.TourDate)
	assert.Equal(t, int64(123456), first.PriceCents)
	assert.Equal(t, "john smith", first.CustomerName)

	second := result.Rows[1]
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), second.TourDate)
	assert.Equal(t, int64(8950), second.PriceCents)
}

func TestParse_MalformedAmountCollected(t *testing.T) {
	input := `Reference;Product;Date;Customer;Quantity;Amount
GYG-501;TOUR-20;10.02.2026;John Smith;2;12,345
GYG-502;TOUR-20;10.02.2026;John Smith;2;200,00
`
	parser := getyourguide.NewParser()

	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Reason, "amount")
}

func TestParse_CommaSeparatedFileRejected(t *testing.T) {
	input := `Booking Ref,Activity ID,Participation Date,Customer Name,Units,Amount (EUR)
KLK-1001,ACT-200,2026-02-10,John Smith,2,200.00
`
	parser := getyourguide.NewParser()

	_, err := parser.Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

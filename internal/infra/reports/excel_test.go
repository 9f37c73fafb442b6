package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkandie/rentroll/internal/domain/ledger"
	"github.com/mkandie/rentroll/internal/domain/payments"
)

func TestPaymentRegister(t *testing.T) {
	pays := []payments.Payment{
		{
			ID:         12,
			TenantName: "Wanjiku Kamau",
			UnitLabel:  "A / A1",
			Amount:     8000,
			Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			ForMonth:   "2024-05",
			Method:     "mpesa",
		},
	}

	f, err := PaymentRegister(pays)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	got, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Wanjiku Kamau", got)

	got, err = f.GetCellValue(sheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", got)

	got, err = f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "payment_id", got)
}

func TestArrearsReport(t *testing.T) {
	standings := []ledger.Standing{
		{
			TenancyID:     7,
			TenantName:    "Otieno Odhiambo",
			UnitLabel:     "B / B1",
			MonthlyRent:   12000,
			MonthsElapsed: 3,
			RentDue:       36000,
			TotalPaid:     12000,
			Balance:       24000,
		},
	}

	f, err := ArrearsReport(standings, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	got, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Arrears as of 2024-05-03", got)

	got, err = f.GetCellValue(sheet, "H3")
	require.NoError(t, err)
	assert.Equal(t, "24000", got)
}

func TestPaymentRegister_Empty(t *testing.T) {
	f, err := PaymentRegister(nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	got, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Package reports renders xlsx workbooks for the office: a payment
// register and an arrears list. Workbooks are built in memory and streamed
// straight into the response.
package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkandie/rentroll/internal/domain/ledger"
	"github.com/mkandie/rentroll/internal/domain/payments"
)

func PaymentRegister(pays []payments.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"payment_id",
		"tenant",
		"unit",
		"amount",
		"payment_date",
		"for_month",
		"method",
		"notes",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, p := range pays {
		cells := []interface{}{
			p.ID,
			p.TenantName,
			p.UnitLabel,
			p.Amount,
			p.Date.Format(time.DateOnly),
			p.ForMonth,
			p.Method,
			p.Notes,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

func ArrearsReport(standings []ledger.Standing, asOf time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	title := []interface{}{fmt.Sprintf("Arrears as of %s", asOf.Format(time.DateOnly))}
	if err := f.SetSheetRow(sheet, "A1", &title); err != nil {
		return nil, err
	}
	header := []interface{}{
		"tenancy_id",
		"tenant",
		"unit",
		"monthly_rent",
		"months_elapsed",
		"rent_due",
		"total_paid",
		"balance",
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return nil, err
	}

	row := 3
	for _, s := range standings {
		cells := []interface{}{
			s.TenancyID,
			s.TenantName,
			s.UnitLabel,
			s.MonthlyRent,
			s.MonthsElapsed,
			s.RentDue,
			s.TotalPaid,
			s.Balance,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

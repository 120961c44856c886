package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/factura/factura-api/internal/domain/billing"
	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type for .xlsx downloads
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "2006-01-02"

// InvoicesXLSX renders a list of invoices as a spreadsheet, one row per
// invoice with derived number, effective status and ledger amounts.
func InvoicesXLSX(invoices []entity.Invoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Invoices"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Number", "Client", "Date", "Due Date", "Status", "Total HT", "VAT", "Discount", "Total", "Paid", "Remaining"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	for row, inv := range invoices {
		ledger := inv.Ledger()
		clientName := ""
		if inv.Client != nil {
			clientName = inv.Client.Name
		}

		values := []interface{}{
			billing.InvoiceNumber(inv.ID),
			clientName,
			inv.Date.Format(dateLayout),
			inv.DueDate.Format(dateLayout),
			inv.EffectiveStatus(now).String(),
			inv.TotalHT,
			inv.VATAmount,
			inv.DiscountAmount,
			inv.Total,
			ledger.PaidAmount,
			ledger.RemainingAmount,
		}
		if err := writeRow(f, sheet, row+2, values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// QuotesXLSX renders a list of quotes as a spreadsheet
func QuotesXLSX(quotes []entity.Quote) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Quotes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Number", "Client", "Date", "Valid Until", "Status", "Subtotal", "Tax", "Discount", "Total"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, q := range quotes {
		clientName := ""
		if q.Client != nil {
			clientName = q.Client.Name
		}

		values := []interface{}{
			billing.QuoteNumber(q.ID),
			clientName,
			q.Date.Format(dateLayout),
			q.ValidUntil.Format(dateLayout),
			q.Status.String(),
			q.Subtotal,
			q.TaxAmount,
			q.DiscountAmount,
			q.Total,
		}
		if err := writeRow(f, sheet, row+2, values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// Filename builds a timestamped download name, e.g. invoices-20260115.xlsx
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, now.Format("20060102"))
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

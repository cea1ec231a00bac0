package orders

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"

	"github.com/florelia/floraladmin/internal/domain"
)

var exportHeader = []string{
	"Order ID", "Customer", "Email", "Status", "Items",
	"Subtotal", "Tax", "Shipping", "Discount", "Total",
	"Payment Method", "Created At",
}

// ExportXLSX writes the given (already filtered) order list as a spreadsheet.
func ExportXLSX(w io.Writer, list []domain.Order) error {
	f := excelize.NewFile()
	sheet := "Sheet1"

	for col, title := range exportHeader {
		f.SetCellValue(sheet, axis(col, 1), title)
	}
	for i, o := range list {
		row := i + 2
		f.SetCellValue(sheet, axis(0, row), o.ID)
		f.SetCellValue(sheet, axis(1, row), o.CustomerInfo.Name)
		f.SetCellValue(sheet, axis(2, row), o.CustomerInfo.Email)
		f.SetCellValue(sheet, axis(3, row), string(o.OrderStatus))
		f.SetCellValue(sheet, axis(4, row), itemSummary(o.Items))
		f.SetCellValue(sheet, axis(5, row), o.Subtotal)
		f.SetCellValue(sheet, axis(6, row), o.Tax)
		f.SetCellValue(sheet, axis(7, row), o.Shipping)
		f.SetCellValue(sheet, axis(8, row), o.Discount)
		f.SetCellValue(sheet, axis(9, row), o.Total)
		f.SetCellValue(sheet, axis(10, row), o.PaymentMethod)
		if t := CreatedTime(o); !t.IsZero() {
			f.SetCellValue(sheet, axis(11, row), t.Format(time.RFC3339))
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write spreadsheet")
	}
	return nil
}

func itemSummary(items []domain.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

func axis(col, row int) string {
	return excelize.ToAlphaString(col) + fmt.Sprint(row)
}

// Package xlsx renders reports as Excel workbooks.
package xlsx

import (
	"fmt"
	"io"

	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"

	"github.com/xuri/excelize/v2"
)

const (
	SalesSheet    = "Ventas"
	ProductsSheet = "Productos"

	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

var (
	salesHeader    = []any{"Pedido", "Fecha", "Ubicación", "Artículos", "Subtotal", "IVA", "Total"}
	productsHeader = []any{"Producto", "Cantidad", "Ingresos"}
)

// WriteSalesReport writes r as a workbook with one row per sale, a totals
// block, and a sheet of best sellers.
func WriteSalesReport(w io.Writer, r queries.SalesReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SalesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ProductsSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeSales(f, r, bold); err != nil {
		return fmt.Errorf("sales sheet: %w", err)
	}
	if err := writeProducts(f, r, bold); err != nil {
		return fmt.Errorf("products sheet: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

func writeSales(f *excelize.File, r queries.SalesReport, bold int) error {
	title := fmt.Sprintf("Reporte de ventas %s - %s", r.From.Format(dateLayout), r.To.Format(dateLayout))
	if err := f.SetCellValue(SalesSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(SalesSheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := setRow(f, SalesSheet, 3, salesHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SalesSheet, "A3", "G3", bold); err != nil {
		return err
	}

	row := 4
	for _, s := range r.Orders {
		items := 0
		for _, it := range s.Items {
			items += it.Quantity
		}
		err := setRow(f, SalesSheet, row, []any{
			s.ID.String(),
			s.CreatedAt.Format(dateTimeLayout),
			s.LocationName(),
			items,
			amount(s.Subtotal),
			amount(s.Tax),
			amount(s.Total),
		})
		if err != nil {
			return err
		}
		row++
	}

	row++
	summary := [][]any{
		{"Pedidos", r.Count},
		{"Ingresos", amount(r.Revenue)},
		{"Ticket promedio", amount(r.AverageTicket)},
	}
	for _, values := range summary {
		if err := setRow(f, SalesSheet, row, values); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SalesSheet, cell, cell, bold); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(SalesSheet, "A", "A", 38); err != nil {
		return err
	}
	return f.SetColWidth(SalesSheet, "B", "C", 18)
}

func writeProducts(f *excelize.File, r queries.SalesReport, bold int) error {
	if err := setRow(f, ProductsSheet, 1, productsHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(ProductsSheet, "A1", "C1", bold); err != nil {
		return err
	}
	for i, p := range r.TopProducts {
		if err := setRow(f, ProductsSheet, i+2, []any{p.Name, p.Quantity, amount(p.Revenue)}); err != nil {
			return err
		}
	}
	return f.SetColWidth(ProductsSheet, "A", "A", 30)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// amount stores money as a number so the sheet can sum it.
func amount(m kernel.Money) float64 {
	return m.Amount().InexactFloat64()
}

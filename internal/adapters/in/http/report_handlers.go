package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pos/internal/adapters/out/records"
	"pos/internal/adapters/out/xlsx"
	"pos/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetDashboard handles GET /api/v1/dashboard.
func (s *Server) GetDashboard(c echo.Context) error {
	query := queries.NewGetDashboardQuery(s.opts.Now(), s.opts.LowStockThreshold)
	d, err := s.h.Dashboard.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newDashboardResponse(d, roleOf(c)))
}

// GetSalesReport handles GET /api/v1/reports/sales?from=&to=. Both dates
// default to today.
func (s *Server) GetSalesReport(c echo.Context) error {
	report, err := s.salesReport(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newSalesReportResponse(report))
}

// GetSalesReportWorkbook handles GET /api/v1/reports/sales.xlsx.
func (s *Server) GetSalesReportWorkbook(c echo.Context) error {
	report, err := s.salesReport(c)
	if err != nil {
		return s.fail(c, err)
	}

	var buf bytes.Buffer
	if err = xlsx.WriteSalesReport(&buf, report); err != nil {
		return s.fail(c, err)
	}
	name := fmt.Sprintf("ventas-%s-%s.xlsx", report.From.Format(time.DateOnly), report.To.Format(time.DateOnly))
	c.Response().Header().Set(echo.HeaderContentDisposition, attachment(name))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) salesReport(c echo.Context) (queries.SalesReport, error) {
	today := s.opts.Now()
	from, to := today, today
	if raw := c.QueryParam("from"); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			return queries.SalesReport{}, err
		}
		from = day
	}
	if raw := c.QueryParam("to"); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			return queries.SalesReport{}, err
		}
		to = day
	}

	query, err := queries.NewGetSalesReportQuery(from, to)
	if err != nil {
		return queries.SalesReport{}, err
	}
	return s.h.SalesReport.Handle(c.Request().Context(), query)
}

// GetLowStockProducts handles GET /api/v1/reports/low-stock?threshold=.
func (s *Server) GetLowStockProducts(c echo.Context) error {
	threshold := s.opts.LowStockThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return s.fail(c, badRequest("threshold must be a non-negative integer"))
		}
		threshold = n
	}

	products, err := s.h.LowStock.Handle(c.Request().Context(), queries.NewGetLowStockProductsQuery(threshold))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newProductResponses(products, threshold))
}

// ExportData handles GET /api/v1/export - a full JSON backup.
func (s *Server) ExportData(c echo.Context) error {
	at := s.opts.Now()
	data, err := s.h.Export.Handle(c.Request().Context(), queries.NewExportDataQuery(at))
	if err != nil {
		return s.fail(c, err)
	}

	doc := records.NewExportDocument(data.Products, data.Orders, data.Categories, data.ExportDate)
	c.Response().Header().Set(echo.HeaderContentDisposition, attachment(records.ExportFileName(at)))
	return c.JSON(http.StatusOK, doc)
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}

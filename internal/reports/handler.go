package reports

import (
	"time"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, apperr.New(apperr.Validation, "start and end query parameters are required")
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.New(apperr.Validation, "start must be 'YYYY-MM-DD'")
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.New(apperr.Validation, "end must be 'YYYY-MM-DD'")
	}
	// end is inclusive on the wire, exclusive internally
	return start, end.AddDate(0, 0, 1), nil
}

// GET /api/reports/:reportId?start&end
func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, ok := Registry[c.Params("reportId")]
		if !ok {
			return apperr.Newf(apperr.NotFound, "unknown report %q", c.Params("reportId"))
		}

		start, end, err := parseRange(c)
		if err != nil {
			return err
		}

		rows, err := report.Fetch(database.DB, start, end)
		if err != nil {
			return err
		}

		return web.OK(c, fiber.Map{
			"title":   report.Title,
			"columns": report.Columns,
			"rows":    rows,
		})
	}
}

// GET /api/reports/:reportId/export?start&end: same rows as an .xlsx file.
func ExportReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reportID := c.Params("reportId")
		report, ok := Registry[reportID]
		if !ok {
			return apperr.Newf(apperr.NotFound, "unknown report %q", reportID)
		}

		start, end, err := parseRange(c)
		if err != nil {
			return err
		}

		rows, err := report.Fetch(database.DB, start, end)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Sheet1"
		header := make([]any, len(report.Columns))
		for i, col := range report.Columns {
			header[i] = col
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not write sheet header")
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not write sheet row")
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not render spreadsheet")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reportID+`.xlsx"`)
		return c.Send(buf.Bytes())
	}
}

package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// Revenue returns the revenue summary for a date range (Admin only)
// GET /api/v1/admin/reports/revenue?from=2026-08-01&to=2026-08-31
func (ctrl *ReportController) Revenue(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	summary, err := ctrl.reportService.RevenueSummary(from, to)
	if err != nil {
		apperrors.InternalError(c, "failed to build revenue report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": summary})
}

// ExportRevenue streams the revenue report as an xlsx download (Admin only)
// GET /api/v1/admin/reports/revenue/export
func (ctrl *ReportController) ExportRevenue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	payload, err := ctrl.reportService.ExportRevenueXLSX(from, to)
	if err != nil {
		log.Error("Failed to export revenue report", err, nil)
		apperrors.InternalError(c, "failed to export revenue report")
		return
	}

	filename := fmt.Sprintf("revenue_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

// Snapshots returns the stored daily revenue snapshots (Admin only)
// GET /api/v1/admin/reports/snapshots
func (ctrl *ReportController) Snapshots(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	snapshots, err := ctrl.reportService.Snapshots(from, to)
	if err != nil {
		apperrors.InternalError(c, "failed to fetch snapshots")
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// RecomputeBestSellers re-runs the best-seller flagging on demand (Admin only)
// POST /api/v1/admin/reports/best-sellers/recompute
func (ctrl *ReportController) RecomputeBestSellers(c *gin.Context) {
	limit := parsePositiveInt(c.DefaultQuery("limit", "10"), 10)

	if err := ctrl.reportService.RecomputeBestSellers(limit); err != nil {
		apperrors.InternalError(c, "failed to recompute best sellers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "best sellers recomputed"})
}

// parseDateRange reads from/to query dates, defaulting to the last 30 days.
// The to date is inclusive.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "from must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "to must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = parsed.Add(24*time.Hour - time.Second)
	}
	if to.Before(from) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "to must not precede from")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

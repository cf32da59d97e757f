package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const bestSellerWindow = 30 * 24 * time.Hour

// RevenueSummary is the admin dashboard report for a date range.
type RevenueSummary struct {
	From       string                    `json:"from"`
	To         string                    `json:"to"`
	OrderCount int                       `json:"order_count"`
	ItemCount  int                       `json:"item_count"`
	Total      float64                   `json:"total"`
	Days       []repository.DailyRevenue `json:"days"`
}

type ReportService interface {
	RevenueSummary(from, to time.Time) (*RevenueSummary, error)
	// ExportRevenueXLSX renders the summary as a spreadsheet for download.
	ExportRevenueXLSX(from, to time.Time) ([]byte, error)
	// SnapshotDay aggregates one calendar day into a revenue snapshot row.
	// Running it again for the same day overwrites the previous snapshot.
	SnapshotDay(day time.Time) (*model.RevenueSnapshot, error)
	Snapshots(from, to time.Time) ([]model.RevenueSnapshot, error)
	// RecomputeBestSellers re-flags the top sold products of the last 30 days.
	RecomputeBestSellers(limit int) error
}

type reportService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewReportService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) ReportService {
	return &reportService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (s *reportService) RevenueSummary(from, to time.Time) (*RevenueSummary, error) {
	days, err := s.orderRepo.RevenueByDay(from, to)
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Days: days,
	}
	for _, day := range days {
		summary.OrderCount += day.OrderCount
		summary.ItemCount += day.ItemCount
		summary.Total += day.Total
	}
	return summary, nil
}

func (s *reportService) ExportRevenueXLSX(from, to time.Time) ([]byte, error) {
	summary, err := s.RevenueSummary(from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Revenue"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Orders", "Items", "Revenue"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, day := range summary.Days {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), day.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), day.OrderCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), day.ItemCount)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), day.Total)
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.OrderCount)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), summary.ItemCount)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), summary.Total)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	logger.Info("Revenue report exported", map[string]interface{}{
		"from": summary.From,
		"to":   summary.To,
		"days": len(summary.Days),
	})
	return buf.Bytes(), nil
}

func (s *reportService) SnapshotDay(day time.Time) (*model.RevenueSnapshot, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	days, err := s.orderRepo.RevenueByDay(start, end)
	if err != nil {
		return nil, err
	}

	snapshot := &model.RevenueSnapshot{
		Date: start.Format("2006-01-02"),
	}
	for _, d := range days {
		snapshot.OrderCount += d.OrderCount
		snapshot.ItemCount += d.ItemCount
		snapshot.Total += d.Total
	}

	if err := s.orderRepo.UpsertSnapshot(snapshot); err != nil {
		logger.Error("Failed to write revenue snapshot", err, map[string]interface{}{
			"date": snapshot.Date,
		})
		return nil, err
	}

	logger.Info("Revenue snapshot written", map[string]interface{}{
		"date":  snapshot.Date,
		"total": snapshot.Total,
	})
	return snapshot, nil
}

func (s *reportService) Snapshots(from, to time.Time) ([]model.RevenueSnapshot, error) {
	return s.orderRepo.SnapshotsBetween(from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (s *reportService) RecomputeBestSellers(limit int) error {
	if limit <= 0 {
		limit = 10
	}

	ids, err := s.orderRepo.TopSoldSince(time.Now().Add(-bestSellerWindow), limit)
	if err != nil {
		return err
	}
	if err := s.productRepo.SetBestSellers(ids); err != nil {
		logger.Error("Failed to update best sellers", err, nil)
		return err
	}

	logger.Info("Best sellers recomputed", map[string]interface{}{
		"count": len(ids),
	})
	return nil
}

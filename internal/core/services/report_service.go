package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"boutiqueos/internal/adapters/cache"
	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

const dashboardCacheTTL = 60 * time.Second

// ReportService handles the dashboard and period reports. It reads
// straight from the database; aggregates this wide don't go through
// the repositories.
type ReportService struct {
	db          *gorm.DB
	reportCache cache.ReportCache
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB, reportCache cache.ReportCache) *ReportService {
	return &ReportService{db: db, reportCache: reportCache}
}

// DashboardData represents the tenant dashboard
type DashboardData struct {
	SalesToday     float64       `json:"sales_today"`
	SalesMonth     float64       `json:"sales_month"`
	ActiveProducts int64         `json:"active_products"`
	Customers      int64         `json:"customers"`
	LowStockCount  int64         `json:"low_stock_count"`
	RecentSales    []SaleSummary `json:"recent_sales"`
}

// SaleSummary represents one row in the recent sales list
type SaleSummary struct {
	ID            uint      `json:"id"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	ItemsCount    int       `json:"items_count"`
	CustomerName  string    `json:"customer_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// PeriodReport represents aggregated sales over a period
type PeriodReport struct {
	Period        string             `json:"period"`
	From          time.Time          `json:"from"`
	SalesCount    int64              `json:"sales_count"`
	Total         float64            `json:"total"`
	AverageTicket float64            `json:"average_ticket"`
	ByMethod      map[string]float64 `json:"by_method"`
}

// PeriodStart maps a period tag to its start timestamp. Day and month
// use calendar bounds; six_months and year are rolling windows.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "day":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case "six_months":
		return now.AddDate(0, -6, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, domain.ErrInvalidInput
}

// GetDashboard returns the tenant dashboard, served from cache when a
// fresh copy exists
func (s *ReportService) GetDashboard(ctx context.Context, tenantID uint) (*DashboardData, error) {
	cacheKey := fmt.Sprintf("reports:%d:dashboard", tenantID)
	if payload, ok, err := s.reportCache.Get(ctx, cacheKey); err == nil && ok {
		var data DashboardData
		if err := json.Unmarshal(payload, &data); err == nil {
			return &data, nil
		}
	}

	now := nowFunc()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	data := &DashboardData{RecentSales: []SaleSummary{}}

	s.db.WithContext(ctx).Model(&models.Sale{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, startOfDay).
		Select("COALESCE(SUM(total), 0)").
		Scan(&data.SalesToday)

	s.db.WithContext(ctx).Model(&models.Sale{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, startOfMonth).
		Select("COALESCE(SUM(total), 0)").
		Scan(&data.SalesMonth)

	s.db.WithContext(ctx).Model(&models.Product{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&data.ActiveProducts)

	s.db.WithContext(ctx).Model(&models.Customer{}).
		Where("tenant_id = ?", tenantID).
		Count(&data.Customers)

	// Two shapes: low variants plus low flat products
	var lowVariants int64
	s.db.WithContext(ctx).Model(&models.Variant{}).
		Where("tenant_id = ? AND stock <= min_stock", tenantID).
		Count(&lowVariants)

	var lowProducts int64
	s.db.WithContext(ctx).Model(&models.Product{}).
		Where("tenant_id = ? AND active = ? AND stock <= min_stock", tenantID, true).
		Where("NOT EXISTS (SELECT 1 FROM variants WHERE variants.product_id = products.id)").
		Count(&lowProducts)
	data.LowStockCount = lowVariants + lowProducts

	var recent []models.Sale
	s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent)
	for _, sale := range recent {
		data.RecentSales = append(data.RecentSales, SaleSummary{
			ID:            sale.ID,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			ItemsCount:    sale.ItemsCount,
			CustomerName:  sale.CustomerName,
			CreatedAt:     sale.CreatedAt,
		})
	}

	if payload, err := json.Marshal(data); err == nil {
		if err := s.reportCache.Set(ctx, cacheKey, payload, dashboardCacheTTL); err != nil {
			log.Printf("⚠️ Dashboard cache write failed for tenant %d: %v", tenantID, err)
		}
	}

	return data, nil
}

// GetPeriodReport aggregates sales since the period start
func (s *ReportService) GetPeriodReport(ctx context.Context, tenantID uint, period string) (*PeriodReport, error) {
	from, err := PeriodStart(period, nowFunc())
	if err != nil {
		return nil, err
	}

	report := &PeriodReport{
		Period:   period,
		From:     from,
		ByMethod: map[string]float64{},
	}

	s.db.WithContext(ctx).Model(&models.Sale{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, from).
		Count(&report.SalesCount)

	s.db.WithContext(ctx).Model(&models.Sale{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, from).
		Select("COALESCE(SUM(total), 0)").
		Scan(&report.Total)

	if report.SalesCount > 0 {
		report.AverageTicket = report.Total / float64(report.SalesCount)
	}

	type methodRow struct {
		PaymentMethod string
		Total         float64
	}
	var rows []methodRow
	s.db.WithContext(ctx).Model(&models.Sale{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, from).
		Select("payment_method, COALESCE(SUM(total), 0) AS total").
		Group("payment_method").
		Scan(&rows)
	for _, row := range rows {
		report.ByMethod[row.PaymentMethod] = row.Total
	}

	return report, nil
}

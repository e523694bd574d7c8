package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
)

// chartMonths is the width of the shipment chart window, current month included.
const chartMonths = 6

// pendingFeedLimit caps the dashboard notification feed.
const pendingFeedLimit = 10

// DashboardService aggregates quote data for the admin dashboard charts and
// the pending-quote notification feed.
type DashboardService struct {
	quotes repo.QuoteRepo

	now func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(quotes repo.QuoteRepo) *DashboardService {
	return &DashboardService{quotes: quotes, now: time.Now}
}

// ShipmentChart builds the dashboard chart payload: quotes grouped by status,
// plus a fixed six-month volume series. Months with no quotes render as zero
// columns rather than being dropped.
func (s *DashboardService) ShipmentChart(ctx context.Context) (domain.ChartData, error) {
	byStatus, err := s.quotes.CountByStatus(ctx)
	if err != nil {
		return domain.ChartData{}, fmt.Errorf("service.DashboardService.ShipmentChart: %w", err)
	}
	for i := range byStatus {
		byStatus[i].Name = displayStatus(byStatus[i].RawStatus)
	}

	start := monthStart(s.now().UTC()).AddDate(0, -(chartMonths - 1), 0)
	buckets, err := s.quotes.MonthlyCounts(ctx, start)
	if err != nil {
		return domain.ChartData{}, fmt.Errorf("service.DashboardService.ShipmentChart: %w", err)
	}

	byMonth := make([]domain.MonthCount, 0, chartMonths)
	for i := 0; i < chartMonths; i++ {
		m := start.AddDate(0, i, 0)
		count := domain.MonthCount{Month: m.Format("Jan")}
		for _, b := range buckets {
			if b.Year == m.Year() && b.Month == int(m.Month()) {
				count.Quotes = b.Quotes
				count.Delivered = b.Delivered
				break
			}
		}
		byMonth = append(byMonth, count)
	}

	return domain.ChartData{ByStatus: byStatus, ByMonth: byMonth}, nil
}

// PendingFeed returns the newest quotes still awaiting review, for the
// dashboard notification bell.
func (s *DashboardService) PendingFeed(ctx context.Context) ([]domain.PendingQuote, error) {
	pending, err := s.quotes.ListPending(ctx, pendingFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("service.DashboardService.PendingFeed: %w", err)
	}
	if pending == nil {
		pending = []domain.PendingQuote{}
	}
	return pending, nil
}

// monthStart truncates t to the first instant of its calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// displayStatus turns a lowercased status into its chart label, e.g.
// "in transit" becomes "In Transit".
func displayStatus(raw string) string {
	words := strings.Fields(raw)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package service

import (
	"context"
	"fmt"
	"time"

	"tobacco/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type RevenueFilter struct {
	From time.Time
	To   time.Time
}

type RevenueResponse struct {
	From         string `json:"from"`
	To           string `json:"to"`
	InvoiceCount int    `json:"invoice_count"`
	ItemCount    int    `json:"item_count"`
	TotalRevenue string `json:"total_revenue"`
}

// --- Interface ---

// StatisticsService aggregates completed invoices for the finance roles.
type StatisticsService interface {
	Revenue(ctx context.Context, filter RevenueFilter) (*RevenueResponse, error)
}

type statisticsService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewStatisticsService(invoiceRepo repository.InvoiceRepository) StatisticsService {
	return &statisticsService{invoiceRepo: invoiceRepo}
}

// --- Implementation ---

// Revenue sums quantity x snapshotted unit price over every DONE invoice in
// the range. Decimal arithmetic keeps the aggregate exact even though the
// per-item prices are integers.
func (s *statisticsService) Revenue(ctx context.Context, filter RevenueFilter) (*RevenueResponse, error) {
	invoices, err := s.invoiceRepo.ListDoneBetween(ctx, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	total := decimal.Zero
	itemCount := 0
	for i := range invoices {
		for _, item := range invoices[i].Items {
			line := decimal.NewFromInt(item.UnitPrice).Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(line)
			itemCount++
		}
	}

	return &RevenueResponse{
		From:         filter.From.Format(time.RFC3339),
		To:           filter.To.Format(time.RFC3339),
		InvoiceCount: len(invoices),
		ItemCount:    itemCount,
		TotalRevenue: total.StringFixed(0),
	}, nil
}

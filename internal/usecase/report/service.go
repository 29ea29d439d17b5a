package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

// MonthlySummary aggregates the entries posted in one calendar month.
type MonthlySummary struct {
	Month       int
	Year        int
	Count       int
	TotalAmount decimal.Decimal
}

// Service produces reports over the posted ledger.
type Service struct {
	store domain.LedgerStore
}

// NewService creates a new report Service instance
func NewService(store domain.LedgerStore) *Service {
	return &Service{store: store}
}

// Monthly returns the count and exact total amount of entries whose UTC
// posting date falls in the given month.
func (s *Service) Monthly(ctx context.Context, month, year int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range", month)
	}

	entries, err := s.store.AllEntries(ctx)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		Month:       month,
		Year:        year,
		TotalAmount: decimal.Zero,
	}
	for _, e := range entries {
		created := e.CreatedAt.UTC()
		if int(created.Month()) == month && created.Year() == year {
			summary.Count++
			summary.TotalAmount = summary.TotalAmount.Add(e.Amount)
		}
	}
	return summary, nil
}

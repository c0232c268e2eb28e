package usecase

import (
	"context"
	"fmt"

	"github.com/avshapoval/doc-insights/internal/core/domain"
	"github.com/avshapoval/doc-insights/internal/core/ports"
)

// DashboardUseCase computes cross-document roll-ups for the analytics view.
type DashboardUseCase struct {
	repo ports.DocumentRepository
}

func NewDashboardUseCase(repo ports.DocumentRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

func (uc *DashboardUseCase) Stats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	docs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents for dashboard: %w", err)
	}
	stats := Aggregate(docs)
	return &stats, nil
}

// Aggregate is a pure reducer over documents-with-relations. The severity
// and priority buckets always sum to the lengths of the flattened lists.
func Aggregate(docs []domain.DocumentWithRelations) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalDocuments: len(docs),
		RisksBySeverity: map[domain.RiskSeverity]int{
			domain.SeverityCritical: 0,
			domain.SeverityHigh:     0,
			domain.SeverityMedium:   0,
			domain.SeverityLow:      0,
		},
		ActionsByPriority: map[domain.Priority]int{
			domain.PriorityHigh:   0,
			domain.PriorityMedium: 0,
			domain.PriorityLow:    0,
		},
	}

	var confidenceSum float64
	for _, doc := range docs {
		if doc.Insights == nil {
			continue
		}
		stats.AnalyzedDocuments++
		confidenceSum += doc.Insights.ConfidenceScores.Overall

		for _, risk := range doc.Insights.Risks {
			stats.AllRisks = append(stats.AllRisks, risk)
			stats.RisksBySeverity[risk.Severity]++
		}
		for _, item := range doc.Insights.ActionItems {
			stats.AllActionItems = append(stats.AllActionItems, item)
			stats.ActionsByPriority[item.Priority]++
		}
	}

	// Denominator floors at 1: no analyzed documents yields 0, not NaN.
	denominator := stats.AnalyzedDocuments
	if denominator < 1 {
		denominator = 1
	}
	stats.AvgConfidence = confidenceSum / float64(denominator)

	return stats
}

// Package export renders dashboard aggregates as an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// DashboardXLSX builds a workbook with an overview sheet plus flattened
// risk and action-item sheets.
func (s *Service) DashboardXLSX(stats *domain.DashboardStats) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := writeOverviewSheet(f, stats); err != nil {
		return nil, err
	}
	if err := writeRisksSheet(f, stats.AllRisks); err != nil {
		return nil, err
	}
	if err := writeActionItemsSheet(f, stats.AllActionItems); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("dashboard export built",
		"documents", stats.TotalDocuments,
		"risks", len(stats.AllRisks),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	return buf.Bytes(), nil
}

func writeOverviewSheet(f *excelize.File, stats *domain.DashboardStats) error {
	const sheet = "Overview"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename overview sheet: %w", err)
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Total documents", stats.TotalDocuments},
		{"Analyzed documents", stats.AnalyzedDocuments},
		{"Average confidence", stats.AvgConfidence},
		{"Risks (critical)", stats.RisksBySeverity[domain.SeverityCritical]},
		{"Risks (high)", stats.RisksBySeverity[domain.SeverityHigh]},
		{"Risks (medium)", stats.RisksBySeverity[domain.SeverityMedium]},
		{"Risks (low)", stats.RisksBySeverity[domain.SeverityLow]},
		{"Action items (high)", stats.ActionsByPriority[domain.PriorityHigh]},
		{"Action items (medium)", stats.ActionsByPriority[domain.PriorityMedium]},
		{"Action items (low)", stats.ActionsByPriority[domain.PriorityLow]},
	}
	return writeRows(f, sheet, rows)
}

func writeRisksSheet(f *excelize.File, risks []domain.Risk) error {
	const sheet = "Risks"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create risks sheet: %w", err)
	}

	rows := [][]any{{"Description", "Severity", "Category", "Confidence"}}
	for _, risk := range risks {
		rows = append(rows, []any{risk.Description, string(risk.Severity), risk.Category, risk.Confidence})
	}
	return writeRows(f, sheet, rows)
}

func writeActionItemsSheet(f *excelize.File, items []domain.ActionItem) error {
	const sheet = "Action Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create action items sheet: %w", err)
	}

	rows := [][]any{{"Description", "Priority", "Deadline", "Assignee"}}
	for _, item := range items {
		rows = append(rows, []any{item.Description, string(item.Priority), item.Deadline, item.Assignee})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

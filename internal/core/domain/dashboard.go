package domain

// DashboardStats is the cross-document roll-up served to the analytics view.
type DashboardStats struct {
	TotalDocuments    int                  `json:"total_documents"`
	AnalyzedDocuments int                  `json:"analyzed_documents"`
	AllRisks          []Risk               `json:"all_risks"`
	AllActionItems    []ActionItem         `json:"all_action_items"`
	RisksBySeverity   map[RiskSeverity]int `json:"risks_by_severity"`
	ActionsByPriority map[Priority]int     `json:"actions_by_priority"`
	AvgConfidence     float64              `json:"avg_confidence"`
}

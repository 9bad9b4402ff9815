package domain

// InsightReport é a saída da cadeia de heurísticas: até três insights, até
// três ações recomendadas e no máximo uma ação principal.
type InsightReport struct {
	Insights      []string `json:"insights"`
	Actions       []string `json:"actions"`
	PrimaryAction string   `json:"primary_action,omitempty"`
}

// DashboardSummary é o resumo plano exportável do painel, pronto para ser
// serializado pela camada de apresentação.
type DashboardSummary struct {
	TotalRevenue  float64                       `json:"total_revenue"`
	WinRate       float64                       `json:"win_rate"`
	AvgDealSize   float64                       `json:"avg_deal_size"`
	AvgCycleDays  float64                       `json:"avg_cycle_days"`
	PipelineValue float64                       `json:"pipeline_value"`
	Forecast      float64                       `json:"forecast"`
	Attainment    float64                       `json:"attainment"`
	DealCount     int                           `json:"deal_count"`
	ByTerritory   map[string]*BreakdownEntry    `json:"by_territory"`
	ByVertical    map[string]*BreakdownEntry    `json:"by_vertical"`
}

// DashboardResponse reúne todos os agregados do painel em uma única resposta
type DashboardResponse struct {
	Metrics       *CoreMetrics          `json:"metrics"`
	Verticals     *DimensionBreakdown   `json:"verticals"`
	Territories   *DimensionBreakdown   `json:"territories"`
	Sources       *DimensionBreakdown   `json:"sources"`
	Concentration *AccountConcentration `json:"concentration"`
	Retention     *RetentionMetrics     `json:"retention"`
	Reps          *RepPerformance       `json:"reps"`
	Quotas        []*TerritoryQuota     `json:"quotas"`
	Risks         *RiskReport           `json:"risks"`
	Filters       *FilterOptions        `json:"filters"`
	DealCount     int                   `json:"deal_count"`
}

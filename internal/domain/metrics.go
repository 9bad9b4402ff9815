package domain

// CoreMetrics são as métricas centrais do painel calculadas sobre o conjunto
// filtrado.
type CoreMetrics struct {
	TotalRevenue  float64 `json:"total_revenue"`
	WinRate       float64 `json:"win_rate"`
	AvgDealSize   float64 `json:"avg_deal_size"`
	AvgCycleDays  float64 `json:"avg_cycle_days"`
	PipelineValue float64 `json:"pipeline_value"`
	Forecast      float64 `json:"forecast"`
	Attainment    float64 `json:"attainment"`
	WonCount      int     `json:"won_count"`
	LostCount     int     `json:"lost_count"`
	PipelineCount int     `json:"pipeline_count"`
}

// BreakdownEntry é o resultado agregado de um grupo em uma análise por
// dimensão (vertical, território ou origem).
type BreakdownEntry struct {
	Key           string   `json:"key"`
	WonCount      int      `json:"won_count"`
	LostCount     int      `json:"lost_count"`
	Revenue       float64  `json:"revenue"`
	PipelineValue float64  `json:"pipeline_value"`
	WinRate       float64  `json:"win_rate"`
	TopLossReason string   `json:"top_loss_reason,omitempty"` // Apenas na análise por vertical
	LostRevenue   float64  `json:"lost_revenue"`
	YoYChange     *float64 `json:"yoy_change,omitempty"` // nil sem receita no ano anterior
}

// DimensionBreakdown agrupa as entradas de uma análise por dimensão,
// ordenadas por receita decrescente.
type DimensionBreakdown struct {
	Dimension string            `json:"dimension"`
	Entries   []*BreakdownEntry `json:"entries"`
}

// Find localiza a entrada de um grupo pelo nome (nil se ausente)
func (b *DimensionBreakdown) Find(key string) *BreakdownEntry {
	if b == nil {
		return nil
	}
	for _, e := range b.Entries {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// LossReasonStat acumula as perdas atribuídas a um motivo
type LossReasonStat struct {
	Reason      string  `json:"reason"`
	Count       int     `json:"count"`
	LostRevenue float64 `json:"lost_revenue"`
}

// TopAccount é uma conta do top-20 por receita ganha
type TopAccount struct {
	Account       string   `json:"account"`
	Revenue       float64  `json:"revenue"`
	PipelineValue float64  `json:"pipeline_value"`
	RevenueShare  float64  `json:"revenue_share"`
	YoYChange     *float64 `json:"yoy_change,omitempty"`
	KeyAccount    bool     `json:"key_account"`
}

// ConcentrationPoint é um ponto da série de concentração: a fração da receita
// de um ano que veio do top-20 atual.
type ConcentrationPoint struct {
	Year  int     `json:"year"`
	Share float64 `json:"share"`
}

// AccountConcentration reúne o ranking de contas e a série de tendência de
// concentração por ano.
type AccountConcentration struct {
	Accounts []*TopAccount         `json:"accounts"`
	Trend    []*ConcentrationPoint `json:"trend"`
}

// RetentionMetrics traz as métricas de retenção por coorte. Quando a coorte
// base é vazia, HasData é falso e as taxas não devem ser lidas.
type RetentionMetrics struct {
	HasData             bool    `json:"has_data"`
	BaseYear            int     `json:"base_year"`
	CurrentYear         int     `json:"current_year"`
	BaseRevenue         float64 `json:"base_revenue"`
	RetainedRevenue     float64 `json:"retained_revenue"`
	ExpansionRevenue    float64 `json:"expansion_revenue"`
	ContractionRevenue  float64 `json:"contraction_revenue"`
	ChurnedRevenue      float64 `json:"churned_revenue"`
	NewRevenue          float64 `json:"new_revenue"`
	NetDollarRetention  float64 `json:"net_dollar_retention"`
	GrossDollarRetention float64 `json:"gross_dollar_retention"`
	BaseLogos           int     `json:"base_logos"`
	RetainedLogos       int     `json:"retained_logos"`
	ChurnedLogos        int     `json:"churned_logos"`
	NewLogos            int     `json:"new_logos"`
	NetLogoRetention    float64 `json:"net_logo_retention"`
	GrossLogoRetention  float64 `json:"gross_logo_retention"`
}

// RepMetrics é o desempenho individual de um vendedor do roster
type RepMetrics struct {
	Name          string    `json:"name"`
	Territory     Territory `json:"territory"`
	WonCount      int       `json:"won_count"`
	LostCount     int       `json:"lost_count"`
	PipelineCount int       `json:"pipeline_count"`
	Revenue       float64   `json:"revenue"`
	PipelineValue float64   `json:"pipeline_value"`
	WinRate       float64   `json:"win_rate"`
	Quota         float64   `json:"quota"`
	Attainment    float64   `json:"attainment"`
}

// RepPerformance agrega o resultado por vendedor, ordenado por receita
type RepPerformance struct {
	Reps []*RepMetrics `json:"reps"`
}

// Find localiza as métricas de um vendedor pelo nome
func (p *RepPerformance) Find(name string) *RepMetrics {
	if p == nil {
		return nil
	}
	for _, r := range p.Reps {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// TerritoryQuota é o atingimento de quota consolidado por território
type TerritoryQuota struct {
	Territory  Territory `json:"territory"`
	Revenue    float64   `json:"revenue"`
	Quota      float64   `json:"quota"`
	Attainment float64   `json:"attainment"`
}

// RiskReport lista as oportunidades em risco detectadas pelas quatro regras
// independentes. Uma mesma oportunidade pode aparecer em mais de uma lista;
// Total é a soma simples dos tamanhos.
type RiskReport struct {
	Stale            []*Deal `json:"stale"`
	RepsAtRisk       []*RepMetrics `json:"reps_at_risk"`
	NoRecentActivity []*Deal `json:"no_recent_activity"`
	LargeAtRisk      []*Deal `json:"large_at_risk"`
	Total            int     `json:"total"`
}

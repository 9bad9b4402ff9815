package aggregating

import (
	"github.com/drobertson-glitch/revintel/internal/config"
	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/internal/usecases/filtering"
)

// Aggregator expõe o painel completo e o resumo exportável
type Aggregator interface {
	Dashboard(dataset *domain.Dataset, opts domain.FilterOptions, goal domain.GoalSettings, roster *domain.Roster) *domain.DashboardResponse
	Summary(dataset *domain.Dataset, opts domain.FilterOptions, goal domain.GoalSettings) *domain.DashboardSummary
}

// Service implementa a interface Aggregator orquestrando os pipelines puros.
// Cada pipeline lê apenas o conjunto filtrado imutável e seus parâmetros;
// nenhum escreve em dado compartilhado com outro.
type Service struct {
	topLimit       int
	supportedYears []int
}

// NewService cria o orquestrador de agregações
func NewService(cfg *config.Config) *Service {
	return &Service{
		topLimit:       cfg.Analysis.TopAccountLimit,
		supportedYears: cfg.SupportedYears(),
	}
}

// Dashboard aplica os filtros, monta a variante "ano anterior" do conjunto e
// distribui para os sete pipelines
func (s *Service) Dashboard(dataset *domain.Dataset, opts domain.FilterOptions, goal domain.GoalSettings, roster *domain.Roster) *domain.DashboardResponse {
	filtered := filtering.Apply(dataset.Deals, opts)
	prior := filtering.Apply(dataset.Deals, filtering.PriorYearOptions(opts))

	ledger := dataset.Ledger
	if ledger == nil {
		ledger = domain.FoldLedger(dataset.Deals)
	}

	performance := RepPerformance(filtered, roster, opts.Years)

	return &domain.DashboardResponse{
		Metrics:       CoreMetrics(filtered, goal.Resolve()),
		Verticals:     VerticalBreakdown(filtered, prior),
		Territories:   TerritoryBreakdown(filtered, prior),
		Sources:       SourceBreakdown(filtered, prior),
		Concentration: AccountConcentration(filtered, prior, ledger, s.topLimit, s.supportedYears),
		Retention:     Retention(ledger, opts.Years),
		Reps:          performance,
		Quotas:        TerritoryQuotas(performance),
		Risks:         DetectRisks(filtered, performance),
		Filters:       &opts,
		DealCount:     len(filtered),
	}
}

// PriorYearMetrics calcula as métricas centrais da variante "ano anterior",
// usadas pelas heurísticas de tendência de taxa de vitória
func (s *Service) PriorYearMetrics(dataset *domain.Dataset, opts domain.FilterOptions) *domain.CoreMetrics {
	prior := filtering.Apply(dataset.Deals, filtering.PriorYearOptions(opts))
	return CoreMetrics(prior, 0)
}

// LossStats acumula as perdas do conjunto filtrado por motivo
func (s *Service) LossStats(dataset *domain.Dataset, opts domain.FilterOptions) []*domain.LossReasonStat {
	return LossReasonStats(filtering.Apply(dataset.Deals, opts))
}

// Summary devolve o resumo plano exportável do painel
func (s *Service) Summary(dataset *domain.Dataset, opts domain.FilterOptions, goal domain.GoalSettings) *domain.DashboardSummary {
	filtered := filtering.Apply(dataset.Deals, opts)
	prior := filtering.Apply(dataset.Deals, filtering.PriorYearOptions(opts))

	metrics := CoreMetrics(filtered, goal.Resolve())

	byTerritory := make(map[string]*domain.BreakdownEntry)
	for _, entry := range TerritoryBreakdown(filtered, prior).Entries {
		byTerritory[entry.Key] = entry
	}

	byVertical := make(map[string]*domain.BreakdownEntry)
	for _, entry := range VerticalBreakdown(filtered, prior).Entries {
		byVertical[entry.Key] = entry
	}

	return &domain.DashboardSummary{
		TotalRevenue:  metrics.TotalRevenue,
		WinRate:       metrics.WinRate,
		AvgDealSize:   metrics.AvgDealSize,
		AvgCycleDays:  metrics.AvgCycleDays,
		PipelineValue: metrics.PipelineValue,
		Forecast:      metrics.Forecast,
		Attainment:    metrics.Attainment,
		DealCount:     len(filtered),
		ByTerritory:   byTerritory,
		ByVertical:    byVertical,
	}
}

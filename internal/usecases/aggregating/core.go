// Package aggregating contém os pipelines de agregação do painel. Todos são
// funções puras sobre o conjunto filtrado imutável: podem rodar em qualquer
// ordem sem efeito sobre o resultado.
package aggregating

import (
	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/pkg/utils"
)

// CoreMetrics calcula as métricas centrais do conjunto filtrado. Conjuntos
// vazios produzem zeros, nunca divisão por zero.
func CoreMetrics(deals []*domain.Deal, goal float64) *domain.CoreMetrics {
	metrics := &domain.CoreMetrics{}

	totalCycleDays := 0

	for _, deal := range deals {
		switch deal.Stage {
		case domain.StageClosedWon:
			metrics.WonCount++
			metrics.TotalRevenue += deal.Amount
			totalCycleDays += deal.AgeDays
		case domain.StageClosedLost:
			metrics.LostCount++
		case domain.StagePipeline:
			metrics.PipelineCount++
			metrics.PipelineValue += deal.Amount
		}
	}

	decided := metrics.WonCount + metrics.LostCount
	metrics.WinRate = utils.SafeRatio(float64(metrics.WonCount), float64(decided))
	metrics.AvgDealSize = utils.SafeRatio(metrics.TotalRevenue, float64(metrics.WonCount))
	metrics.AvgCycleDays = utils.RoundWithTwoDecimalPlace(
		utils.SafeRatio(float64(totalCycleDays), float64(metrics.WonCount)),
	)
	metrics.Forecast = metrics.TotalRevenue + metrics.PipelineValue
	metrics.Attainment = utils.SafeRatio(metrics.Forecast, goal)

	return metrics
}

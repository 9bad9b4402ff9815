package aggregating

import (
	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/pkg/utils"
)

// Retention calcula as métricas de retenção por coorte a partir do razão de
// receita conta/ano. A coorte base são as contas com receita no ano anterior
// ao ano corrente (máximo dos anos ativos). Coorte base vazia produz o estado
// explícito "sem dados" (HasData falso), nunca NaN.
func Retention(ledger *domain.RevenueLedger, activeYears []int) *domain.RetentionMetrics {
	metrics := &domain.RetentionMetrics{}

	if ledger == nil || len(activeYears) == 0 {
		return metrics
	}

	currentYear := activeYears[0]
	for _, y := range activeYears[1:] {
		if y > currentYear {
			currentYear = y
		}
	}
	priorYear := currentYear - 1

	metrics.BaseYear = priorYear
	metrics.CurrentYear = currentYear

	base := make(map[string]float64)
	current := make(map[string]float64)
	for account, byYear := range ledger.Revenue {
		if revenue := byYear[priorYear]; revenue > 0 {
			base[account] = revenue
		}
		if revenue := byYear[currentYear]; revenue > 0 {
			current[account] = revenue
		}
	}

	if len(base) == 0 {
		return metrics
	}

	metrics.HasData = true
	metrics.BaseLogos = len(base)

	for account, baseRevenue := range base {
		currentRevenue := current[account]

		metrics.BaseRevenue += baseRevenue
		metrics.RetainedRevenue += currentRevenue

		switch {
		case currentRevenue == 0:
			metrics.ChurnedRevenue += baseRevenue
			metrics.ChurnedLogos++
		case currentRevenue > baseRevenue:
			metrics.ExpansionRevenue += currentRevenue - baseRevenue
			metrics.RetainedLogos++
		case currentRevenue < baseRevenue:
			metrics.ContractionRevenue += baseRevenue - currentRevenue
			metrics.RetainedLogos++
		default:
			metrics.RetainedLogos++
		}
	}

	for account, currentRevenue := range current {
		if _, inBase := base[account]; !inBase {
			metrics.NewRevenue += currentRevenue
			metrics.NewLogos++
		}
	}

	// As taxas ficam sem arredondamento; a camada de apresentação decide o
	// formato de exibição
	metrics.NetDollarRetention = utils.SafeRatio(metrics.RetainedRevenue, metrics.BaseRevenue)
	metrics.GrossDollarRetention = utils.SafeRatio(metrics.BaseRevenue-metrics.ChurnedRevenue, metrics.BaseRevenue)
	metrics.NetLogoRetention = utils.SafeRatio(float64(metrics.RetainedLogos), float64(metrics.BaseLogos))
	metrics.GrossLogoRetention = utils.SafeRatio(float64(metrics.BaseLogos-metrics.ChurnedLogos), float64(metrics.BaseLogos))

	return metrics
}

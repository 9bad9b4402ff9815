package aggregating

import (
	"sort"

	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/pkg/utils"
)

// RepPerformance calcula o desempenho individual restrito ao roster válido.
// Vendedores presentes nos dados mas fora do roster são excluídos por
// completo. Todo vendedor do roster aparece no resultado, mesmo sem
// oportunidades no conjunto filtrado.
func RepPerformance(deals []*domain.Deal, roster *domain.Roster, activeYears []int) *domain.RepPerformance {
	if roster == nil {
		return &domain.RepPerformance{Reps: []*domain.RepMetrics{}}
	}

	byName := make(map[string]*domain.RepMetrics, len(roster.Reps))
	result := make([]*domain.RepMetrics, 0, len(roster.Reps))

	for _, rep := range roster.Reps {
		metrics := &domain.RepMetrics{
			Name:      rep.Name,
			Territory: rep.Territory,
			Quota:     rep.QuotaForYears(activeYears),
		}
		byName[rep.Name] = metrics
		result = append(result, metrics)
	}

	for _, deal := range deals {
		metrics, ok := byName[deal.Rep]
		if !ok {
			continue
		}

		switch deal.Stage {
		case domain.StageClosedWon:
			metrics.WonCount++
			metrics.Revenue += deal.Amount
		case domain.StageClosedLost:
			metrics.LostCount++
		case domain.StagePipeline:
			metrics.PipelineCount++
			metrics.PipelineValue += deal.Amount
		}
	}

	for _, metrics := range result {
		decided := metrics.WonCount + metrics.LostCount
		metrics.WinRate = utils.SafeRatio(float64(metrics.WonCount), float64(decided))
		metrics.Attainment = utils.SafeRatio(metrics.Revenue, metrics.Quota)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Revenue != result[j].Revenue {
			return result[i].Revenue > result[j].Revenue
		}
		return result[i].Name < result[j].Name
	})

	return &domain.RepPerformance{Reps: result}
}

// TerritoryQuotas consolida receita e quota por território a partir do
// desempenho por vendedor
func TerritoryQuotas(performance *domain.RepPerformance) []*domain.TerritoryQuota {
	byTerritory := make(map[domain.Territory]*domain.TerritoryQuota)

	for _, rep := range performance.Reps {
		quota, ok := byTerritory[rep.Territory]
		if !ok {
			quota = &domain.TerritoryQuota{Territory: rep.Territory}
			byTerritory[rep.Territory] = quota
		}
		quota.Revenue += rep.Revenue
		quota.Quota += rep.Quota
	}

	result := make([]*domain.TerritoryQuota, 0, len(byTerritory))
	for _, quota := range byTerritory {
		quota.Attainment = utils.SafeRatio(quota.Revenue, quota.Quota)
		result = append(result, quota)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Territory < result[j].Territory
	})

	return result
}

package aggregating

import (
	"github.com/drobertson-glitch/revintel/internal/domain"
)

// Limiares das regras de risco
const (
	staleAgeDays        = 60
	staleMinAmount      = 30_000.0
	repRiskAttainment   = 0.5
	repRiskMinDecided   = 2
	inactivityDays      = 14
	inactivityMinAmount = 50_000.0
	largeMinAmount      = 100_000.0
	largeAgeDays        = 45
	largeMaxProbability = 0.5
)

// DetectRisks avalia os quatro predicados independentes sobre o subconjunto
// Pipeline e o desempenho por vendedor. As regras não são exclusivas: a mesma
// oportunidade pode aparecer em mais de uma lista, e o total é a soma simples
// dos tamanhos.
func DetectRisks(deals []*domain.Deal, performance *domain.RepPerformance) *domain.RiskReport {
	report := &domain.RiskReport{
		Stale:            []*domain.Deal{},
		RepsAtRisk:       []*domain.RepMetrics{},
		NoRecentActivity: []*domain.Deal{},
		LargeAtRisk:      []*domain.Deal{},
	}

	for _, deal := range deals {
		if deal.Stage != domain.StagePipeline {
			continue
		}

		if deal.AgeDays > staleAgeDays && deal.Amount > staleMinAmount {
			report.Stale = append(report.Stale, deal)
		}
		if deal.InactivityDays > inactivityDays && deal.Amount > inactivityMinAmount {
			report.NoRecentActivity = append(report.NoRecentActivity, deal)
		}
		if deal.Amount > largeMinAmount && deal.AgeDays > largeAgeDays && deal.Probability < largeMaxProbability {
			report.LargeAtRisk = append(report.LargeAtRisk, deal)
		}
	}

	if performance != nil {
		for _, rep := range performance.Reps {
			decided := rep.WonCount + rep.LostCount
			if rep.Attainment < repRiskAttainment && decided >= repRiskMinDecided {
				report.RepsAtRisk = append(report.RepsAtRisk, rep)
			}
		}
	}

	report.Total = len(report.Stale) + len(report.RepsAtRisk) +
		len(report.NoRecentActivity) + len(report.LargeAtRisk)

	return report
}

package insighting

import (
	"fmt"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

// Limites do seletor de ação principal
const (
	criticalVerticalWinRate = 0.35
	criticalVerticalDecided = 5
	priceLossMinDeals       = 3
	repsAtRiskMin           = 2
	standoutVerticalPP      = 0.15
	standoutVerticalWins    = 3
)

// primaryAction aplica a cadeia de prioridade própria da ação principal,
// devolvendo no máximo um resultado:
// vertical crítica > concentração de perdas por preço > vendedores em risco >
// vertical destaque > nada.
func primaryAction(ctx *Context) string {
	if action := criticalVertical(ctx); action != "" {
		return action
	}
	if action := priceLossConcentration(ctx); action != "" {
		return action
	}
	if action := repsAtRisk(ctx); action != "" {
		return action
	}
	return standoutVertical(ctx)
}

// criticalVertical: taxa de vitória abaixo de 35% com ao menos 5 decididos
func criticalVertical(ctx *Context) string {
	if ctx.Verticals == nil {
		return ""
	}

	for _, entry := range ctx.Verticals.Entries {
		decided := entry.WonCount + entry.LostCount
		if decided >= criticalVerticalDecided && entry.WinRate < criticalVerticalWinRate {
			return fmt.Sprintf(
				"Intervene in the %s vertical: win rate is %.0f%% across %d decided deals.",
				entry.Key, entry.WinRate*100, decided,
			)
		}
	}
	return ""
}

// priceLossConcentration: três ou mais negócios perdidos por preço
func priceLossConcentration(ctx *Context) string {
	priceLosses := 0
	for _, stat := range ctx.LossReasons {
		if category, _ := classifyLossReason(stat.Reason); category == "Price" {
			priceLosses += stat.Count
		}
	}

	if priceLosses >= priceLossMinDeals {
		return fmt.Sprintf(
			"Address pricing: %d deals lost to price; strengthen ROI narrative.",
			priceLosses,
		)
	}
	return ""
}

// repsAtRisk: dois ou mais vendedores com atingimento abaixo de 50%
func repsAtRisk(ctx *Context) string {
	if ctx.Reps == nil {
		return ""
	}

	atRisk := 0
	for _, rep := range ctx.Reps.Reps {
		decided := rep.WonCount + rep.LostCount
		if rep.Attainment < 0.5 && decided >= 2 {
			atRisk++
		}
	}

	if atRisk >= repsAtRiskMin {
		return fmt.Sprintf(
			"Coach the team: %d reps are below 50%% quota attainment.",
			atRisk,
		)
	}
	return ""
}

// standoutVertical: vertical 15pp acima da taxa geral com ao menos 3 vitórias
func standoutVertical(ctx *Context) string {
	if ctx.Verticals == nil {
		return ""
	}

	overall := ctx.Metrics.WinRate
	for _, entry := range ctx.Verticals.Entries {
		if entry.WonCount >= standoutVerticalWins && entry.WinRate > overall+standoutVerticalPP {
			return fmt.Sprintf(
				"Scale what works in %s: win rate is %.0fpp above overall.",
				entry.Key, (entry.WinRate-overall)*100,
			)
		}
	}
	return ""
}

// Service constrói o contexto das regras a partir do painel agregado e da
// variante de ano anterior
type Service struct {
	cycleGoalDays float64
}

// NewService cria o serviço de insights
func NewService(cycleGoalDays float64) *Service {
	return &Service{cycleGoalDays: cycleGoalDays}
}

// Report monta o contexto e avalia as cadeias de regras
func (s *Service) Report(dashboard *domain.DashboardResponse, priorMetrics *domain.CoreMetrics, lossReasons []*domain.LossReasonStat, goal float64) *domain.InsightReport {
	ctx := &Context{
		Metrics:       dashboard.Metrics,
		PriorMetrics:  priorMetrics,
		Verticals:     dashboard.Verticals,
		Territories:   dashboard.Territories,
		Sources:       dashboard.Sources,
		Reps:          dashboard.Reps,
		LossReasons:   lossReasons,
		Goal:          goal,
		CycleGoalDays: s.cycleGoalDays,
	}

	return Evaluate(ctx)
}

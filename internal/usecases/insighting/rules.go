// Package insighting avalia cadeias de regras ranqueadas sobre as saídas dos
// agregadores e emite insights e ações em linguagem natural. Cada regra é um
// par (predicado, construtor de mensagem) avaliado em prioridade fixa; cada
// slot dispara no máximo uma vez.
package insighting

import (
	"fmt"
	"math"
	"strings"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

// Limites das heurísticas
const (
	maxInsights           = 3
	maxActions            = 3
	winRateShiftPP        = 0.05
	verticalOutlierPP     = 0.12
	verticalMinDecided    = 3
	verticalMinWins       = 3
	territoryDeclinePct   = 0.20
	cycleOverrunPct       = 0.25
	pipelineCoverageRatio = 2.5
)

// Context reúne as saídas agregadas lidas pelas regras
type Context struct {
	Metrics       *domain.CoreMetrics
	PriorMetrics  *domain.CoreMetrics
	Verticals     *domain.DimensionBreakdown
	Territories   *domain.DimensionBreakdown
	Sources       *domain.DimensionBreakdown
	Reps          *domain.RepPerformance
	LossReasons   []*domain.LossReasonStat
	Goal          float64
	CycleGoalDays float64
}

// rule é um slot da cadeia: predicado + construtor de mensagens. Retorna as
// strings vazias quando não dispara.
type rule func(ctx *Context) (insight, action string)

// A ordem define a prioridade de avaliação
var insightRules = []rule{
	goalGapRule,
	winRateTrendRule,
	verticalOutlierRule,
	territoryDeclineRule,
	cycleOverrunRule,
	pipelineCoverageRule,
}

// Evaluate percorre a cadeia de regras de cima para baixo acumulando até
// três insights e três ações, e aplica o seletor de ação principal
func Evaluate(ctx *Context) *domain.InsightReport {
	report := &domain.InsightReport{
		Insights: []string{},
		Actions:  []string{},
	}

	for _, r := range insightRules {
		if len(report.Insights) >= maxInsights && len(report.Actions) >= maxActions {
			break
		}

		insight, action := r(ctx)
		if insight != "" && len(report.Insights) < maxInsights {
			report.Insights = append(report.Insights, insight)
		}
		if action != "" && len(report.Actions) < maxActions {
			report.Actions = append(report.Actions, action)
		}
	}

	report.PrimaryAction = primaryAction(ctx)

	return report
}

// goalGapRule dimensiona a distância até a meta em quantidade de negócios
func goalGapRule(ctx *Context) (string, string) {
	if ctx.Goal <= 0 {
		return "", ""
	}

	gap := ctx.Goal - ctx.Metrics.TotalRevenue
	if gap <= 0 {
		return fmt.Sprintf("Revenue is $%.0f ahead of the $%.0f goal.", -gap, ctx.Goal), ""
	}

	if ctx.Metrics.AvgDealSize <= 0 {
		return fmt.Sprintf("Revenue is $%.0f short of the $%.0f goal.", gap, ctx.Goal), ""
	}

	needed := int(math.Ceil(gap / ctx.Metrics.AvgDealSize))
	insight := fmt.Sprintf("Revenue is $%.0f short of the $%.0f goal.", gap, ctx.Goal)
	action := fmt.Sprintf("Close ~%d deals at the current average deal size ($%.0f) to hit goal.", needed, ctx.Metrics.AvgDealSize)
	return insight, action
}

// Remediações prontas por categoria de motivo de perda
var lossRemediations = []struct {
	keywords []string
	category string
	action   string
}{
	{keywords: []string{"price", "pricing", "cost", "expensive"}, category: "Price", action: "strengthen ROI narrative"},
	{keywords: []string{"compet"}, category: "Competition", action: "build battlecards"},
	{keywords: []string{"budget"}, category: "No Budget", action: "qualify budget earlier"},
	{keywords: []string{"fit", "feature", "product"}, category: "Product Fit", action: "tighten ICP"},
}

// classifyLossReason resolve a categoria de um motivo de perda bruto
func classifyLossReason(reason string) (category, remediation string) {
	lower := strings.ToLower(reason)
	for _, entry := range lossRemediations {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category, entry.action
			}
		}
	}
	return "", ""
}

// winRateTrendRule diagnostica variações de taxa de vitória acima de 5pp
// contra o ano anterior
func winRateTrendRule(ctx *Context) (string, string) {
	if ctx.PriorMetrics == nil || ctx.PriorMetrics.WonCount+ctx.PriorMetrics.LostCount == 0 {
		return "", ""
	}

	delta := ctx.Metrics.WinRate - ctx.PriorMetrics.WinRate

	if delta < -winRateShiftPP {
		if len(ctx.LossReasons) == 0 {
			return fmt.Sprintf("Win rate dropped %.0fpp vs last year.", -delta*100), ""
		}
		top := ctx.LossReasons[0]
		insight := fmt.Sprintf(
			"Win rate dropped %.0fpp vs last year; top loss reason is %q (%d deals, $%.0f lost).",
			-delta*100, top.Reason, top.Count, top.LostRevenue,
		)
		if _, remediation := classifyLossReason(top.Reason); remediation != "" {
			return insight, fmt.Sprintf("To counter %q losses: %s.", top.Reason, remediation)
		}
		return insight, ""
	}

	if delta > winRateShiftPP {
		best := bestSource(ctx.Sources)
		insight := fmt.Sprintf("Win rate improved %.0fpp vs last year.", delta*100)
		if best == nil {
			return insight, ""
		}
		return insight, fmt.Sprintf(
			"Reallocate budget toward %s, the best-performing lead source (%.0f%% win rate).",
			best.Key, best.WinRate*100,
		)
	}

	return "", ""
}

// bestSource escolhe a origem com a maior taxa de vitória entre as que têm
// ao menos uma vitória
func bestSource(sources *domain.DimensionBreakdown) *domain.BreakdownEntry {
	if sources == nil {
		return nil
	}

	var best *domain.BreakdownEntry
	for _, entry := range sources.Entries {
		if entry.WonCount == 0 {
			continue
		}
		if best == nil || entry.WinRate > best.WinRate {
			best = entry
		}
	}
	return best
}

// verticalOutlierRule aponta a vertical destoando da taxa de vitória geral
// em mais de 12pp, para baixo ou para cima
func verticalOutlierRule(ctx *Context) (string, string) {
	if ctx.Verticals == nil {
		return "", ""
	}

	overall := ctx.Metrics.WinRate

	for _, entry := range ctx.Verticals.Entries {
		decided := entry.WonCount + entry.LostCount
		if decided >= verticalMinDecided && entry.WinRate < overall-verticalOutlierPP {
			insight := fmt.Sprintf(
				"%s is underperforming: %.0f%% win rate vs %.0f%% overall.",
				entry.Key, entry.WinRate*100, overall*100,
			)
			action := fmt.Sprintf("Review qualification and messaging for the %s vertical.", entry.Key)
			return insight, action
		}
	}

	for _, entry := range ctx.Verticals.Entries {
		if entry.WonCount >= verticalMinWins && entry.WinRate > overall+verticalOutlierPP {
			insight := fmt.Sprintf(
				"%s is outperforming: %.0f%% win rate vs %.0f%% overall.",
				entry.Key, entry.WinRate*100, overall*100,
			)
			action := fmt.Sprintf("Double down on the %s playbook across other verticals.", entry.Key)
			return insight, action
		}
	}

	return "", ""
}

// territoryDeclineRule sinaliza queda YoY acima de 20% em um território
func territoryDeclineRule(ctx *Context) (string, string) {
	if ctx.Territories == nil {
		return "", ""
	}

	for _, entry := range ctx.Territories.Entries {
		if entry.YoYChange != nil && *entry.YoYChange < -territoryDeclinePct {
			insight := fmt.Sprintf(
				"%s revenue is down %.0f%% year over year.",
				entry.Key, -*entry.YoYChange*100,
			)
			action := fmt.Sprintf("Investigate the %s territory decline with the regional team.", entry.Key)
			return insight, action
		}
	}

	return "", ""
}

// cycleOverrunRule compara o ciclo médio com a meta de ciclo
func cycleOverrunRule(ctx *Context) (string, string) {
	if ctx.CycleGoalDays <= 0 || ctx.Metrics.AvgCycleDays == 0 {
		return "", ""
	}

	if ctx.Metrics.AvgCycleDays > ctx.CycleGoalDays*(1+cycleOverrunPct) {
		insight := fmt.Sprintf(
			"Average sales cycle is %.0f days, more than 25%% over the %.0f-day goal.",
			ctx.Metrics.AvgCycleDays, ctx.CycleGoalDays,
		)
		return insight, "Tighten exit criteria per stage to shorten the sales cycle."
	}

	return "", ""
}

// pipelineCoverageRule exige cobertura de pipeline de 2.5x sobre a lacuna
// restante, apenas quando há lacuna
func pipelineCoverageRule(ctx *Context) (string, string) {
	gap := ctx.Goal - ctx.Metrics.TotalRevenue
	if gap <= 0 {
		return "", ""
	}

	required := gap * pipelineCoverageRatio
	if ctx.Metrics.PipelineValue >= required {
		return "", ""
	}

	insight := fmt.Sprintf(
		"Pipeline coverage is below %.1fx the remaining gap ($%.0f in pipeline vs $%.0f needed).",
		pipelineCoverageRatio, ctx.Metrics.PipelineValue, required,
	)
	return insight, "Prioritize pipeline generation to restore coverage."
}

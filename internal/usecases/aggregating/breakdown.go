package aggregating

import (
	"sort"

	"github.com/drobertson-glitch/revintel/internal/domain"
	"github.com/drobertson-glitch/revintel/pkg/utils"
)

// Dimensões das análises de agrupamento
const (
	DimensionVertical  = "vertical"
	DimensionTerritory = "territory"
	DimensionSource    = "source"
)

// VerticalBreakdown agrupa por vertical, incluindo o motivo de perda modal
// de cada grupo
func VerticalBreakdown(deals, prior []*domain.Deal) *domain.DimensionBreakdown {
	return breakdownBy(deals, prior, DimensionVertical, func(d *domain.Deal) string {
		return d.Vertical
	}, true)
}

// TerritoryBreakdown agrupa por território
func TerritoryBreakdown(deals, prior []*domain.Deal) *domain.DimensionBreakdown {
	return breakdownBy(deals, prior, DimensionTerritory, func(d *domain.Deal) string {
		return string(d.Territory)
	}, false)
}

// SourceBreakdown agrupa por origem de lead
func SourceBreakdown(deals, prior []*domain.Deal) *domain.DimensionBreakdown {
	return breakdownBy(deals, prior, DimensionSource, func(d *domain.Deal) string {
		return d.Source
	}, false)
}

// groupAccumulator acompanha um grupo durante o fold
type groupAccumulator struct {
	entry       *domain.BreakdownEntry
	firstSeen   int
	lossCounts  map[string]int
	lossFirstAt map[string]int
}

func breakdownBy(deals, prior []*domain.Deal, dimension string, key func(*domain.Deal) string, withLossReason bool) *domain.DimensionBreakdown {
	groups := make(map[string]*groupAccumulator)
	order := 0

	for _, deal := range deals {
		k := key(deal)
		group, ok := groups[k]
		if !ok {
			group = &groupAccumulator{
				entry:       &domain.BreakdownEntry{Key: k},
				firstSeen:   order,
				lossCounts:  make(map[string]int),
				lossFirstAt: make(map[string]int),
			}
			groups[k] = group
			order++
		}

		switch deal.Stage {
		case domain.StageClosedWon:
			group.entry.WonCount++
			group.entry.Revenue += deal.Amount
		case domain.StageClosedLost:
			group.entry.LostCount++
			group.entry.LostRevenue += deal.Amount
			if withLossReason {
				if _, seen := group.lossCounts[deal.LossReason]; !seen {
					group.lossFirstAt[deal.LossReason] = group.entry.LostCount
				}
				group.lossCounts[deal.LossReason]++
			}
		case domain.StagePipeline:
			group.entry.PipelineValue += deal.Amount
		}
	}

	// Receita do ano anterior por grupo, para a variação YoY
	priorRevenue := make(map[string]float64)
	for _, deal := range prior {
		if deal.Stage == domain.StageClosedWon {
			priorRevenue[key(deal)] += deal.Amount
		}
	}

	entries := make([]*domain.BreakdownEntry, 0, len(groups))
	for k, group := range groups {
		entry := group.entry
		decided := entry.WonCount + entry.LostCount
		entry.WinRate = utils.SafeRatio(float64(entry.WonCount), float64(decided))

		if withLossReason {
			entry.TopLossReason = modalLossReason(group.lossCounts, group.lossFirstAt)
		}

		if base := priorRevenue[k]; base > 0 {
			change := utils.RoundWithTwoDecimalPlace((entry.Revenue - base) / base)
			entry.YoYChange = &change
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Revenue != entries[j].Revenue {
			return entries[i].Revenue > entries[j].Revenue
		}
		return entries[i].Key < entries[j].Key
	})

	return &domain.DimensionBreakdown{Dimension: dimension, Entries: entries}
}

// modalLossReason devolve o motivo de perda mais frequente; empates são
// decididos pela primeira ocorrência
func modalLossReason(counts map[string]int, firstAt map[string]int) string {
	best := ""
	bestCount := 0

	for reason, count := range counts {
		if count > bestCount {
			best, bestCount = reason, count
			continue
		}
		if count == bestCount && best != "" && firstAt[reason] < firstAt[best] {
			best = reason
		}
	}

	return best
}

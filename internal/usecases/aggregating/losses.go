package aggregating

import (
	"sort"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

// LossReasonStats acumula as perdas do conjunto filtrado por motivo,
// ordenadas por frequência; empates são decididos pela primeira ocorrência
func LossReasonStats(deals []*domain.Deal) []*domain.LossReasonStat {
	byReason := make(map[string]*domain.LossReasonStat)
	firstAt := make(map[string]int)
	order := 0

	for _, deal := range deals {
		if deal.Stage != domain.StageClosedLost {
			continue
		}

		stat, ok := byReason[deal.LossReason]
		if !ok {
			stat = &domain.LossReasonStat{Reason: deal.LossReason}
			byReason[deal.LossReason] = stat
			firstAt[deal.LossReason] = order
			order++
		}
		stat.Count++
		stat.LostRevenue += deal.Amount
	}

	stats := make([]*domain.LossReasonStat, 0, len(byReason))
	for _, stat := range byReason {
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return firstAt[stats[i].Reason] < firstAt[stats[j].Reason]
	})

	return stats
}

package insighting

import (
	"github.com/drobertson-glitch/revintel/internal/domain"
)

// Insighter define a geração do relatório de insights a partir do painel
// agregado, da variante de ano anterior e das estatísticas de perda
type Insighter interface {
	Report(dashboard *domain.DashboardResponse, priorMetrics *domain.CoreMetrics, lossReasons []*domain.LossReasonStat, goal float64) *domain.InsightReport
}

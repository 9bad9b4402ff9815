package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

func TestDetectRisks(t *testing.T) {
	tests := []struct {
		name     string
		deals    []*domain.Deal
		reps     []*domain.RepMetrics
		validate func(t *testing.T, report *domain.RiskReport)
	}{
		{
			name: "Oportunidade parada: idade acima de 60 dias e valor acima de 30k",
			deals: []*domain.Deal{
				{ID: "a", Stage: domain.StagePipeline, AgeDays: 61, Amount: 30001},
				{ID: "b", Stage: domain.StagePipeline, AgeDays: 61, Amount: 30000},
				{ID: "c", Stage: domain.StagePipeline, AgeDays: 60, Amount: 30001},
			},
			validate: func(t *testing.T, report *domain.RiskReport) {
				require.Len(t, report.Stale, 1)
				assert.Equal(t, "a", report.Stale[0].ID)
				assert.Equal(t, 1, report.Total)
			},
		},
		{
			name: "Sem atividade recente: mais de 14 dias e valor acima de 50k",
			deals: []*domain.Deal{
				{ID: "a", Stage: domain.StagePipeline, InactivityDays: 15, Amount: 50001},
				{ID: "b", Stage: domain.StagePipeline, InactivityDays: 14, Amount: 90000},
			},
			validate: func(t *testing.T, report *domain.RiskReport) {
				require.Len(t, report.NoRecentActivity, 1)
				assert.Equal(t, "a", report.NoRecentActivity[0].ID)
			},
		},
		{
			name: "Negócio grande em risco: acima de 100k, mais de 45 dias e probabilidade baixa",
			deals: []*domain.Deal{
				{ID: "a", Stage: domain.StagePipeline, Amount: 100001, AgeDays: 46, Probability: 0.4},
				{ID: "b", Stage: domain.StagePipeline, Amount: 100001, AgeDays: 46, Probability: 0.5},
				{ID: "c", Stage: domain.StagePipeline, Amount: 100000, AgeDays: 46, Probability: 0.4},
			},
			validate: func(t *testing.T, report *domain.RiskReport) {
				require.Len(t, report.LargeAtRisk, 1)
				assert.Equal(t, "a", report.LargeAtRisk[0].ID)
			},
		},
		{
			name: "Oportunidades decididas nunca entram nas listas de pipeline",
			deals: []*domain.Deal{
				{Stage: domain.StageClosedWon, AgeDays: 90, Amount: 200000, Probability: 0},
				{Stage: domain.StageClosedLost, AgeDays: 90, Amount: 200000, InactivityDays: 30},
			},
			validate: func(t *testing.T, report *domain.RiskReport) {
				assert.Zero(t, report.Total)
			},
		},
		{
			name: "Vendedor em risco: atingimento abaixo de 50% com ao menos duas decididas",
			reps: []*domain.RepMetrics{
				{Name: "Alice", Attainment: 0.4, WonCount: 1, LostCount: 1},
				{Name: "Bob", Attainment: 0.4, WonCount: 1, LostCount: 0}, // poucas decididas
				{Name: "Carol", Attainment: 0.6, WonCount: 1, LostCount: 2},
			},
			validate: func(t *testing.T, report *domain.RiskReport) {
				require.Len(t, report.RepsAtRisk, 1)
				assert.Equal(t, "Alice", report.RepsAtRisk[0].Name)
			},
		},
		{
			name: "A mesma oportunidade pode disparar mais de uma regra",
			deals: []*domain.Deal{
				{ID: "a", Stage: domain.StagePipeline, AgeDays: 90, Amount: 150000, InactivityDays: 20, Probability: 0.3},
			},
			validate: func(t *testing.T, report *domain.RiskReport) {
				assert.Len(t, report.Stale, 1)
				assert.Len(t, report.NoRecentActivity, 1)
				assert.Len(t, report.LargeAtRisk, 1)
				assert.Equal(t, 3, report.Total)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := DetectRisks(tt.deals, &domain.RepPerformance{Reps: tt.reps})
			tt.validate(t, report)
		})
	}
}

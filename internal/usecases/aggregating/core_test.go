package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

func TestCoreMetrics(t *testing.T) {
	tests := []struct {
		name     string
		deals    []*domain.Deal
		goal     float64
		validate func(t *testing.T, m *domain.CoreMetrics)
	}{
		{
			name: "Deve calcular as métricas centrais de um conjunto misto",
			deals: []*domain.Deal{
				{Stage: domain.StageClosedWon, Amount: 30000, AgeDays: 40},
				{Stage: domain.StageClosedWon, Amount: 20000, AgeDays: 60},
				{Stage: domain.StageClosedLost, Amount: 15000},
				{Stage: domain.StageClosedLost, Amount: 5000},
				{Stage: domain.StagePipeline, Amount: 25000},
			},
			goal: 100000,
			validate: func(t *testing.T, m *domain.CoreMetrics) {
				assert.Equal(t, 50000.0, m.TotalRevenue)
				assert.Equal(t, 2, m.WonCount)
				assert.Equal(t, 2, m.LostCount)
				assert.Equal(t, 1, m.PipelineCount)
				assert.Equal(t, 0.5, m.WinRate)
				assert.Equal(t, 25000.0, m.AvgDealSize)
				assert.Equal(t, 50.0, m.AvgCycleDays)
				assert.Equal(t, 25000.0, m.PipelineValue)
				assert.Equal(t, 75000.0, m.Forecast)
				assert.Equal(t, 0.75, m.Attainment)
			},
		},
		{
			name:  "Conjunto vazio produz zeros sem divisão por zero",
			deals: []*domain.Deal{},
			goal:  100000,
			validate: func(t *testing.T, m *domain.CoreMetrics) {
				assert.Zero(t, m.TotalRevenue)
				assert.Zero(t, m.WinRate)
				assert.Zero(t, m.AvgDealSize)
				assert.Zero(t, m.AvgCycleDays)
				assert.Zero(t, m.Attainment)
			},
		},
		{
			name: "Meta zero produz atingimento zero",
			deals: []*domain.Deal{
				{Stage: domain.StageClosedWon, Amount: 10000},
			},
			goal: 0,
			validate: func(t *testing.T, m *domain.CoreMetrics) {
				assert.Equal(t, 10000.0, m.TotalRevenue)
				assert.Zero(t, m.Attainment)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, CoreMetrics(tt.deals, tt.goal))
		})
	}
}

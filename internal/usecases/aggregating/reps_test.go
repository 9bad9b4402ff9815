package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drobertson-glitch/revintel/internal/domain"
)

func testRoster() *domain.Roster {
	return &domain.Roster{Reps: []*domain.Rep{
		{Name: "Alice", Territory: domain.TerritoryUS, Quota: map[int]float64{2024: 100000}},
		{Name: "Bob", Territory: domain.TerritoryUS, Quota: map[int]float64{2024: 80000}},
		{Name: "Carol", Territory: domain.TerritoryCanada, Quota: map[int]float64{2024: 60000}},
	}}
}

func TestRepPerformance(t *testing.T) {
	deals := []*domain.Deal{
		{Rep: "Alice", Stage: domain.StageClosedWon, Amount: 70000},
		{Rep: "Alice", Stage: domain.StageClosedLost, Amount: 10000},
		{Rep: "Bob", Stage: domain.StagePipeline, Amount: 30000},
		{Rep: "Mallory", Stage: domain.StageClosedWon, Amount: 500000}, // fora do roster
	}

	performance := RepPerformance(deals, testRoster(), []int{2024})

	// Mallory não aparece; Carol aparece mesmo sem oportunidades
	require.Len(t, performance.Reps, 3)
	assert.Nil(t, performance.Find("Mallory"))

	alice := performance.Reps[0] // maior receita primeiro
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 70000.0, alice.Revenue)
	assert.Equal(t, 0.5, alice.WinRate)
	assert.Equal(t, 100000.0, alice.Quota)
	assert.Equal(t, 0.7, alice.Attainment)

	bob := performance.Find("Bob")
	require.NotNil(t, bob)
	assert.Equal(t, 1, bob.PipelineCount)
	assert.Equal(t, 30000.0, bob.PipelineValue)
	assert.Zero(t, bob.WinRate)

	carol := performance.Find("Carol")
	require.NotNil(t, carol)
	assert.Zero(t, carol.Revenue)
	assert.Zero(t, carol.Attainment)
}

func TestRepPerformanceQuotaSomaAnosAtivos(t *testing.T) {
	roster := &domain.Roster{Reps: []*domain.Rep{
		{Name: "Alice", Territory: domain.TerritoryUS, Quota: map[int]float64{2023: 50000, 2024: 100000}},
	}}

	performance := RepPerformance(nil, roster, []int{2023, 2024})

	require.Len(t, performance.Reps, 1)
	assert.Equal(t, 150000.0, performance.Reps[0].Quota)
}

func TestRepPerformanceSemRoster(t *testing.T) {
	performance := RepPerformance([]*domain.Deal{{Rep: "Alice"}}, nil, []int{2024})
	assert.Empty(t, performance.Reps)
}

func TestTerritoryQuotas(t *testing.T) {
	deals := []*domain.Deal{
		{Rep: "Alice", Stage: domain.StageClosedWon, Amount: 70000},
		{Rep: "Bob", Stage: domain.StageClosedWon, Amount: 20000},
		{Rep: "Carol", Stage: domain.StageClosedWon, Amount: 30000},
	}

	performance := RepPerformance(deals, testRoster(), []int{2024})
	quotas := TerritoryQuotas(performance)

	require.Len(t, quotas, 2)

	// Ordenados por território
	canada := quotas[0]
	assert.Equal(t, domain.TerritoryCanada, canada.Territory)
	assert.Equal(t, 30000.0, canada.Revenue)
	assert.Equal(t, 60000.0, canada.Quota)
	assert.Equal(t, 0.5, canada.Attainment)

	us := quotas[1]
	assert.Equal(t, domain.TerritoryUS, us.Territory)
	assert.Equal(t, 90000.0, us.Revenue)
	assert.Equal(t, 180000.0, us.Quota)
	assert.Equal(t, 0.5, us.Attainment)
}

package aggregating

import (
	"testing"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestChurnShiftCounts(t *testing.T) {
	tests := []struct {
		name     string
		current  *domain.ShiftCounts
		previous *domain.ShiftCounts
		expected *domain.ShiftCounts
	}{
		{
			name:     "Queda em relação ao período anterior gera churn positivo",
			current:  &domain.ShiftCounts{Requested: 2, Filled: 1, FillRate: 50, UniqueWorkers: 1},
			previous: &domain.ShiftCounts{Requested: 5, Filled: 4, FillRate: 80, UniqueWorkers: 3},
			expected: &domain.ShiftCounts{Requested: 3, Filled: 3, FillRate: 30, UniqueWorkers: 2},
		},
		{
			name:     "Sem período anterior o churn é zero menos o corrente",
			current:  &domain.ShiftCounts{Requested: 2, Filled: 1, FillRate: 50, UniqueWorkers: 1},
			previous: nil,
			expected: &domain.ShiftCounts{Requested: -2, Filled: -1, FillRate: -50, UniqueWorkers: -1},
		},
		{
			name:     "Sem valor corrente o churn repete o anterior",
			current:  nil,
			previous: &domain.ShiftCounts{Requested: 5, Filled: 4, FillRate: 80, UniqueWorkers: 3},
			expected: &domain.ShiftCounts{Requested: 5, Filled: 4, FillRate: 80, UniqueWorkers: 3},
		},
		{
			name:     "Ambos ausentes não produz churn",
			current:  nil,
			previous: nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := churnShiftCounts(tt.current, tt.previous)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestChurnRevenueMetrics(t *testing.T) {
	t.Run("Arredonda o resultado em duas casas", func(t *testing.T) {
		current := &domain.RevenueMetrics{Gross: 100.105, Net: 33.333, Expected: 10, AvgMargin: 1}
		previous := &domain.RevenueMetrics{Gross: 250.555, Net: 50, Expected: 10, AvgMargin: 4}

		got := churnRevenueMetrics(current, previous)

		assert.Equal(t, 150.45, got.Gross)
		assert.Equal(t, 16.67, got.Net)
		assert.Equal(t, float64(0), got.Expected)
		assert.Equal(t, float64(3), got.AvgMargin)
	})

	t.Run("Sem período anterior o churn é o corrente negado", func(t *testing.T) {
		current := &domain.RevenueMetrics{Gross: 320, Net: 120, Expected: 640, AvgMargin: 15}

		got := churnRevenueMetrics(current, nil)

		assert.Equal(t, &domain.RevenueMetrics{Gross: -320, Net: -120, Expected: -640, AvgMargin: -15}, got)
	})
}

func TestBuildBreakdown(t *testing.T) {
	aggregates := []*domain.ShiftAggregate{
		{
			RequirementType: domain.RequirementTypeRN,
			Requested:       2,
			Filled:          1,
			UniqueWorkers:   1,
			ExpectedRevenue: 640,
			GrossRevenue:    320,
			NetRevenue:      120,
			TotalMargin:     15,
		},
		{
			RequirementType: domain.RequirementTypeCNA,
			Requested:       3,
			Filled:          3,
			UniqueWorkers:   2,
			ExpectedRevenue: 300,
			GrossRevenue:    300,
			NetRevenue:      90,
			TotalMargin:     30,
		},
	}

	breakdown := buildBreakdown(aggregates, false)

	t.Run("Entrada por requirement type com razões calculadas", func(t *testing.T) {
		rn := breakdown[domain.RequirementTypeRN]
		assert.Equal(t, &domain.ShiftCounts{Requested: 2, Filled: 1, FillRate: 50, UniqueWorkers: 1}, rn.CurrentShifts)
		assert.Equal(t, &domain.RevenueMetrics{Expected: 640, Gross: 320, Net: 120, AvgMargin: 15}, rn.CurrentRevenue)
		assert.Nil(t, rn.PreviousShifts)
	})

	t.Run("Bucket all soma totais e recalcula as razões", func(t *testing.T) {
		all := breakdown[domain.RequirementTypeAll]
		assert.Equal(t, &domain.ShiftCounts{Requested: 5, Filled: 4, FillRate: 80, UniqueWorkers: 3}, all.CurrentShifts)
		assert.Equal(t, &domain.RevenueMetrics{Expected: 940, Gross: 620, Net: 210, AvgMargin: 11.25}, all.CurrentRevenue)
	})

	t.Run("Ledger vazio ainda produz o bucket all zerado", func(t *testing.T) {
		empty := buildBreakdown(nil, true)

		all := empty[domain.RequirementTypeAll]
		assert.Equal(t, &domain.ShiftCounts{}, all.PreviousShifts)
		assert.Nil(t, all.CurrentShifts)
		assert.Len(t, empty, 1)
	})

	t.Run("Divisão por zero resolve para zero em vez de NaN", func(t *testing.T) {
		zero := buildBreakdown([]*domain.ShiftAggregate{
			{RequirementType: domain.RequirementTypeLVN},
		}, false)

		lvn := zero[domain.RequirementTypeLVN]
		assert.Equal(t, float64(0), lvn.CurrentShifts.FillRate)
		assert.Equal(t, float64(0), lvn.CurrentRevenue.AvgMargin)
	})
}

package aggregating

import (
	"testing"
	"time"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func losAngeles(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func TestPeriodResolver_PeriodStart(t *testing.T) {
	loc := losAngeles(t)
	resolver := NewPeriodResolver(loc)

	tests := []struct {
		name        string
		granularity domain.Granularity
		input       time.Time
		expected    time.Time
	}{
		{
			name:        "Diário trunca para meia-noite no fuso de referência",
			granularity: domain.GranularityDaily,
			input:       time.Date(2025, 1, 15, 14, 30, 0, 0, loc),
			expected:    time.Date(2025, 1, 15, 0, 0, 0, 0, loc),
		},
		{
			name:        "Semanal trunca para a segunda-feira ISO",
			granularity: domain.GranularityWeekly,
			input:       time.Date(2025, 1, 15, 14, 30, 0, 0, loc), // quarta
			expected:    time.Date(2025, 1, 13, 0, 0, 0, 0, loc),
		},
		{
			name:        "Domingo pertence à semana iniciada na segunda anterior",
			granularity: domain.GranularityWeekly,
			input:       time.Date(2025, 1, 19, 23, 59, 0, 0, loc),
			expected:    time.Date(2025, 1, 13, 0, 0, 0, 0, loc),
		},
		{
			name:        "Segunda-feira já é o início da própria semana",
			granularity: domain.GranularityWeekly,
			input:       time.Date(2025, 1, 13, 0, 0, 0, 0, loc),
			expected:    time.Date(2025, 1, 13, 0, 0, 0, 0, loc),
		},
		{
			name:        "Mensal trunca para o primeiro dia do mês",
			granularity: domain.GranularityMonthly,
			input:       time.Date(2025, 1, 31, 23, 0, 0, 0, loc),
			expected:    time.Date(2025, 1, 1, 0, 0, 0, 0, loc),
		},
		{
			name:        "Instante UTC é convertido para o fuso antes do truncamento",
			granularity: domain.GranularityDaily,
			input:       time.Date(2025, 1, 15, 2, 0, 0, 0, time.UTC), // ainda dia 14 em LA
			expected:    time.Date(2025, 1, 14, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.PeriodStart(tt.input, tt.granularity)
			assert.True(t, tt.expected.Equal(got), "esperado %s, obtido %s", tt.expected, got)

			// Idempotência: aplicar de novo não muda o resultado
			again := resolver.PeriodStart(got, tt.granularity)
			assert.True(t, got.Equal(again))
		})
	}
}

func TestPeriodResolver_PreviousAndNextPeriod(t *testing.T) {
	loc := losAngeles(t)
	resolver := NewPeriodResolver(loc)

	t.Run("Mensal navega meses de tamanhos diferentes", func(t *testing.T) {
		march := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)

		assert.True(t, time.Date(2025, 2, 1, 0, 0, 0, 0, loc).Equal(resolver.PreviousPeriod(march, domain.GranularityMonthly)))
		assert.True(t, time.Date(2025, 4, 1, 0, 0, 0, 0, loc).Equal(resolver.NextPeriod(march, domain.GranularityMonthly)))
	})

	t.Run("Semanal navega em saltos de sete dias", func(t *testing.T) {
		monday := time.Date(2025, 1, 13, 0, 0, 0, 0, loc)

		assert.True(t, time.Date(2025, 1, 6, 0, 0, 0, 0, loc).Equal(resolver.PreviousPeriod(monday, domain.GranularityWeekly)))
		assert.True(t, time.Date(2025, 1, 20, 0, 0, 0, 0, loc).Equal(resolver.NextPeriod(monday, domain.GranularityWeekly)))
	})

	t.Run("Diário atravessa a virada do ano", func(t *testing.T) {
		newYear := time.Date(2025, 1, 1, 0, 0, 0, 0, loc)

		assert.True(t, time.Date(2024, 12, 31, 0, 0, 0, 0, loc).Equal(resolver.PreviousPeriod(newYear, domain.GranularityDaily)))
	})
}

func TestPeriodResolver_FromWallClock(t *testing.T) {
	loc := losAngeles(t)
	resolver := NewPeriodResolver(loc)

	// O Postgres devolve o date_trunc como timestamp sem fuso; o driver
	// entrega em UTC e o valor precisa ser relido como hora de parede local
	wall := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	got := resolver.FromWallClock(wall)

	assert.True(t, time.Date(2025, 1, 13, 0, 0, 0, 0, loc).Equal(got))
}

package aggregating

import (
	"sort"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/pkg/utils"
)

// safeDivide resolve divisão por zero para 0 em vez de NaN/Inf
func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// buildBreakdown converte as linhas cruas da agregação no breakdown por
// requirement type, incluindo o bucket sintético "all" com os totais somados
// e as razões (fillRate, avgMargin) recomputadas. Todos os valores gravados
// já saem arredondados em 2 casas. Com asPrevious os valores são montados nos
// campos previous* (baseline recalculada de um período sem registro).
func buildBreakdown(aggregates []*domain.ShiftAggregate, asPrevious bool) domain.Breakdown {
	breakdown := domain.Breakdown{}

	var totalRequested, totalFilled, totalUniqueWorkers int64
	var totalExpected, totalGross, totalNet, totalMargin float64

	for _, agg := range aggregates {
		counts := &domain.ShiftCounts{
			Requested:     utils.RoundWithTwoDecimalPlace(float64(agg.Requested)),
			Filled:        utils.RoundWithTwoDecimalPlace(float64(agg.Filled)),
			FillRate:      utils.RoundWithTwoDecimalPlace(safeDivide(float64(agg.Filled), float64(agg.Requested)) * 100),
			UniqueWorkers: utils.RoundWithTwoDecimalPlace(float64(agg.UniqueWorkers)),
		}
		revenue := &domain.RevenueMetrics{
			Expected:  utils.RoundWithTwoDecimalPlace(agg.ExpectedRevenue),
			Gross:     utils.RoundWithTwoDecimalPlace(agg.GrossRevenue),
			Net:       utils.RoundWithTwoDecimalPlace(agg.NetRevenue),
			AvgMargin: utils.RoundWithTwoDecimalPlace(safeDivide(agg.TotalMargin, float64(agg.Filled))),
		}

		breakdown[agg.RequirementType] = newMetricEntry(counts, revenue, asPrevious)

		totalRequested += agg.Requested
		totalFilled += agg.Filled
		totalUniqueWorkers += agg.UniqueWorkers
		totalExpected += agg.ExpectedRevenue
		totalGross += agg.GrossRevenue
		totalNet += agg.NetRevenue
		totalMargin += agg.TotalMargin
	}

	allCounts := &domain.ShiftCounts{
		Requested:     utils.RoundWithTwoDecimalPlace(float64(totalRequested)),
		Filled:        utils.RoundWithTwoDecimalPlace(float64(totalFilled)),
		FillRate:      utils.RoundWithTwoDecimalPlace(safeDivide(float64(totalFilled), float64(totalRequested)) * 100),
		UniqueWorkers: utils.RoundWithTwoDecimalPlace(float64(totalUniqueWorkers)),
	}
	allRevenue := &domain.RevenueMetrics{
		Expected:  utils.RoundWithTwoDecimalPlace(totalExpected),
		Gross:     utils.RoundWithTwoDecimalPlace(totalGross),
		Net:       utils.RoundWithTwoDecimalPlace(totalNet),
		AvgMargin: utils.RoundWithTwoDecimalPlace(safeDivide(totalMargin, float64(totalFilled))),
	}

	breakdown[domain.RequirementTypeAll] = newMetricEntry(allCounts, allRevenue, asPrevious)

	return breakdown
}

func newMetricEntry(counts *domain.ShiftCounts, revenue *domain.RevenueMetrics, asPrevious bool) *domain.Metric {
	if asPrevious {
		return &domain.Metric{
			PreviousShifts:  counts,
			PreviousRevenue: revenue,
		}
	}
	return &domain.Metric{
		CurrentShifts:  counts,
		CurrentRevenue: revenue,
	}
}

// unionKeys devolve, em ordem estável, as chaves presentes em qualquer um dos
// breakdowns
func unionKeys(a, b domain.Breakdown) []domain.RequirementType {
	seen := map[domain.RequirementType]bool{}
	for key := range a {
		seen[key] = true
	}
	for key := range b {
		seen[key] = true
	}

	keys := make([]domain.RequirementType, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

package aggregating

import (
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/pkg/utils"
)

// Churn segue a convenção previous − current: valor positivo significa queda
// em relação ao período anterior. Quando não há período anterior o churn é
// 0 − current (a facility "não tinha nada antes"); quando não há valor
// corrente o churn repete o previous.

func churnValue(current, previous float64) float64 {
	return utils.RoundWithTwoDecimalPlace(previous - current)
}

func churnShiftCounts(current, previous *domain.ShiftCounts) *domain.ShiftCounts {
	if previous == nil {
		if current == nil {
			return nil
		}
		previous = &domain.ShiftCounts{}
	}
	if current == nil {
		rounded := domain.ShiftCounts{
			Requested:     utils.RoundWithTwoDecimalPlace(previous.Requested),
			Filled:        utils.RoundWithTwoDecimalPlace(previous.Filled),
			FillRate:      utils.RoundWithTwoDecimalPlace(previous.FillRate),
			UniqueWorkers: utils.RoundWithTwoDecimalPlace(previous.UniqueWorkers),
		}
		return &rounded
	}

	return &domain.ShiftCounts{
		Requested:     churnValue(current.Requested, previous.Requested),
		Filled:        churnValue(current.Filled, previous.Filled),
		FillRate:      churnValue(current.FillRate, previous.FillRate),
		UniqueWorkers: churnValue(current.UniqueWorkers, previous.UniqueWorkers),
	}
}

func churnRevenueMetrics(current, previous *domain.RevenueMetrics) *domain.RevenueMetrics {
	if previous == nil {
		if current == nil {
			return nil
		}
		previous = &domain.RevenueMetrics{}
	}
	if current == nil {
		rounded := domain.RevenueMetrics{
			Expected:  utils.RoundWithTwoDecimalPlace(previous.Expected),
			Gross:     utils.RoundWithTwoDecimalPlace(previous.Gross),
			Net:       utils.RoundWithTwoDecimalPlace(previous.Net),
			AvgMargin: utils.RoundWithTwoDecimalPlace(previous.AvgMargin),
		}
		return &rounded
	}

	return &domain.RevenueMetrics{
		Expected:  churnValue(current.Expected, previous.Expected),
		Gross:     churnValue(current.Gross, previous.Gross),
		Net:       churnValue(current.Net, previous.Net),
		AvgMargin: churnValue(current.AvgMargin, previous.AvgMargin),
	}
}

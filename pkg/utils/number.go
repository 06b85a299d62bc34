package utils

import "math"

// RoundWithTwoDecimalPlace arredonda em duas casas; todos os valores
// persistidos nas seções de métricas passam por aqui
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

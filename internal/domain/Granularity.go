package domain

import "fmt"

// Granularity representa o tamanho da janela de agregação de métricas
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// AllGranularities lista as granularidades na ordem em que são processadas
var AllGranularities = []Granularity{
	GranularityDaily,
	GranularityWeekly,
	GranularityMonthly,
}

// ParseGranularity valida uma granularidade recebida de fora (rotas, eventos)
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("granularidade inválida: %q", s)
}

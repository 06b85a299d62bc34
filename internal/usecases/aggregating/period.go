package aggregating

import (
	"time"

	"github.com/caretide/facility-metrics-api/internal/domain"
)

// PeriodResolver normaliza instantes para o início do período (dia, semana ISO
// ou mês) no fuso de referência configurado, e navega para os períodos
// adjacentes. PeriodStart é idempotente.
type PeriodResolver struct {
	loc *time.Location
}

func NewPeriodResolver(loc *time.Location) *PeriodResolver {
	return &PeriodResolver{loc: loc}
}

func (r *PeriodResolver) Location() *time.Location {
	return r.loc
}

// PeriodStart retorna o início do período que contém t na granularidade g
func (r *PeriodResolver) PeriodStart(t time.Time, granularity domain.Granularity) time.Time {
	t = t.In(r.loc)

	switch granularity {
	case domain.GranularityWeekly:
		// Semana ISO: segunda-feira
		offset := (int(t.Weekday()) + 6) % 7
		t = t.AddDate(0, 0, -offset)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc)
	case domain.GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, r.loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc)
	}
}

// PreviousPeriod retorna o início do período imediatamente anterior
func (r *PeriodResolver) PreviousPeriod(start time.Time, granularity domain.Granularity) time.Time {
	switch granularity {
	case domain.GranularityWeekly:
		return start.AddDate(0, 0, -7)
	case domain.GranularityMonthly:
		return start.AddDate(0, -1, 0)
	default:
		return start.AddDate(0, 0, -1)
	}
}

// NextPeriod retorna o início do período imediatamente seguinte; também é o
// limite exclusivo da janela [start, next) usada nas agregações
func (r *PeriodResolver) NextPeriod(start time.Time, granularity domain.Granularity) time.Time {
	switch granularity {
	case domain.GranularityWeekly:
		return start.AddDate(0, 0, 7)
	case domain.GranularityMonthly:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// FromWallClock reinterpreta no fuso de referência um instante que chegou como
// hora de parede (caso do date_trunc AT TIME ZONE do Postgres, que devolve
// timestamp sem fuso)
func (r *PeriodResolver) FromWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, r.loc)
}

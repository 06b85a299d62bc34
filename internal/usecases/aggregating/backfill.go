package aggregating

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caretide/facility-metrics-api/infrastructure/repository"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Processor é o subconjunto do Aggregator que o backfill dirige
type Processor interface {
	ProcessMetricForDate(ctx context.Context, facilityID string, date time.Time, granularity domain.Granularity) error
}

// BackfillRunner reconstrói o histórico de métricas de uma granularidade.
// Os períodos rodam em sequência para garantir que o antecessor de cada um já
// esteja persistido quando a cascata acontecer; as facilities de um mesmo
// período rodam em paralelo sob o semáforo.
type BackfillRunner struct {
	processor         Processor
	shiftRepo         repository.ShiftRepository
	periods           *PeriodResolver
	timezone          string
	maxConcurrentJobs int
}

func NewBackfillRunner(
	processor Processor,
	shiftRepo repository.ShiftRepository,
	periods *PeriodResolver,
	maxConcurrentJobs int,
) *BackfillRunner {
	if maxConcurrentJobs < 1 {
		maxConcurrentJobs = 1
	}

	return &BackfillRunner{
		processor:         processor,
		shiftRepo:         shiftRepo,
		periods:           periods,
		timezone:          periods.Location().String(),
		maxConcurrentJobs: maxConcurrentJobs,
	}
}

func (r *BackfillRunner) Run(ctx context.Context, granularity domain.Granularity) error {
	buckets, err := r.shiftRepo.ListPeriodBuckets(ctx, granularity, r.timezone)
	if err != nil {
		return fmt.Errorf("erro ao listar períodos com atividade: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"granularity": granularity,
		"buckets":     len(buckets),
	}).Info("Iniciando backfill de métricas de facilities")

	var failures atomic.Int64

	for index, bucket := range buckets {
		// O bucket chega como hora de parede no fuso de referência
		periodStart := r.periods.PeriodStart(r.periods.FromWallClock(bucket.Start), granularity)

		semaphore := make(chan struct{}, r.maxConcurrentJobs)
		var wg sync.WaitGroup

		for _, facilityID := range bucket.FacilityIDs {
			wg.Add(1)
			semaphore <- struct{}{}

			go func(id string) {
				defer func() {
					<-semaphore
					wg.Done()
				}()

				if err := r.processor.ProcessMetricForDate(ctx, id, periodStart, granularity); err != nil {
					// Falha de uma facility não derruba o backfill das demais
					logrus.WithError(err).WithFields(logrus.Fields{
						"facility_id": id,
						"granularity": granularity,
						"period":      periodStart.Format(time.DateOnly),
					}).Error("Erro no backfill de métricas da facility")
					failures.Add(1)
				}
			}(facilityID)
		}

		wg.Wait()

		logrus.WithFields(logrus.Fields{
			"granularity": granularity,
			"processed":   index + 1,
			"total":       len(buckets),
			"period":      periodStart.Format(time.DateOnly),
		}).Info("Backfill: período processado")
	}

	logrus.WithFields(logrus.Fields{
		"granularity": granularity,
		"buckets":     len(buckets),
		"failures":    failures.Load(),
	}).Info("Backfill de métricas concluído")

	return nil
}

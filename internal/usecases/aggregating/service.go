package aggregating

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/caretide/facility-metrics-api/infrastructure/repository"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Aggregator é o controlador de cascata: recalcula as métricas de um período a
// partir do ledger e propaga o resultado como baseline do período seguinte
type Aggregator interface {
	// OnShiftUpdate processa um evento do ciclo de vida de plantões, uma vez por
	// granularidade habilitada nas flags
	OnShiftUpdate(ctx context.Context, event domain.ShiftUpdateEvent) error
	// ProcessMetricForDate roda o ciclo completo para (facility, período,
	// granularidade): fetch-or-bootstrap, cálculo, churn, persistência e cascata
	ProcessMetricForDate(ctx context.Context, facilityID string, date time.Time, granularity domain.Granularity) error
}

type Service struct {
	shiftRepo    repository.ShiftRepository
	metricRepo   repository.FacilityMetricRepository
	facilityRepo repository.FacilityRepository
	periods      *PeriodResolver
}

func NewService(
	shiftRepo repository.ShiftRepository,
	metricRepo repository.FacilityMetricRepository,
	facilityRepo repository.FacilityRepository,
	periods *PeriodResolver,
) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		metricRepo:   metricRepo,
		facilityRepo: facilityRepo,
		periods:      periods,
	}
}

func (s *Service) OnShiftUpdate(ctx context.Context, event domain.ShiftUpdateEvent) error {
	facilityID := event.FacilityID
	start := event.Start

	// Evento magro: enriquece com o ledger antes de processar
	if facilityID == "" || start == nil {
		if event.ShiftID == "" {
			return fmt.Errorf("evento de plantão sem shiftId e sem facilityId/start")
		}

		ref, err := s.shiftRepo.GetShiftRef(ctx, event.ShiftID)
		if err != nil {
			return fmt.Errorf("erro ao buscar plantão %s: %w", event.ShiftID, err)
		}
		if ref == nil {
			return fmt.Errorf("plantão %s não encontrado", event.ShiftID)
		}

		facilityID = ref.FacilityID
		start = &ref.Start
	}

	logrus.WithFields(logrus.Fields{
		"event_id":    event.EventID,
		"facility_id": facilityID,
		"start":       start.Format(time.RFC3339),
	}).Debug("Processando evento de atualização de plantão")

	// As três granularidades são independentes; cada uma faz seu próprio ciclo
	// de leitura-cálculo-escrita em paralelo
	var wg sync.WaitGroup
	errs := make(chan error, len(domain.AllGranularities))

	for _, granularity := range domain.AllGranularities {
		if !event.Flags.Enabled(granularity) {
			continue
		}

		wg.Add(1)
		go func(g domain.Granularity) {
			defer wg.Done()

			periodStart := s.periods.PeriodStart(*start, g)
			if err := s.ProcessMetricForDate(ctx, facilityID, periodStart, g); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"facility_id": facilityID,
					"granularity": g,
					"period":      periodStart.Format(time.DateOnly),
				}).Error("Erro ao processar métricas da facility")
				errs <- fmt.Errorf("%s: %w", g, err)
			}
		}(granularity)
	}

	wg.Wait()
	close(errs)

	// O primeiro erro sobe para a camada de entrega decidir o redelivery
	for err := range errs {
		return err
	}
	return nil
}

func (s *Service) ProcessMetricForDate(ctx context.Context, facilityID string, date time.Time, granularity domain.Granularity) error {
	date = s.periods.PeriodStart(date, granularity)

	record, err := s.fetchOrBootstrap(ctx, facilityID, date, granularity)
	if err != nil {
		return err
	}

	current, err := s.calculateBreakdown(ctx, facilityID, date, granularity, false)
	if err != nil {
		return err
	}

	previous := record.Section(granularity)

	merged := domain.Breakdown{}
	for _, reqType := range unionKeys(current, previous) {
		prevEntry := previous[reqType]
		curEntry := current[reqType]

		entry := &domain.Metric{}
		if prevEntry != nil {
			*entry = *prevEntry
		}

		var curShifts *domain.ShiftCounts
		var curRevenue *domain.RevenueMetrics
		if curEntry != nil {
			curShifts = curEntry.CurrentShifts
			curRevenue = curEntry.CurrentRevenue
			entry.CurrentShifts = curShifts
			entry.CurrentRevenue = curRevenue
		}

		var prevShifts *domain.ShiftCounts
		var prevRevenue *domain.RevenueMetrics
		if prevEntry != nil {
			prevShifts = prevEntry.PreviousShifts
			prevRevenue = prevEntry.PreviousRevenue
		}

		entry.ChurnShifts = churnShiftCounts(curShifts, prevShifts)
		entry.ChurnRevenue = churnRevenueMetrics(curRevenue, prevRevenue)

		merged[reqType] = entry
	}

	// Registro inteiro montado em memória antes de um único upsert por período
	record.SetSection(granularity, merged)
	if err := s.metricRepo.UpsertSection(ctx, record, granularity); err != nil {
		return err
	}

	return s.cascadeNext(ctx, facilityID, date, granularity, current)
}

// fetchOrBootstrap carrega o registro do período; se a seção ainda não existe,
// monta um registro novo com a identidade da facility e a baseline do período
// anterior (histórico armazenado primeiro, agregação fresca como fallback)
func (s *Service) fetchOrBootstrap(ctx context.Context, facilityID string, date time.Time, granularity domain.Granularity) (*domain.FacilityMetric, error) {
	record, err := s.metricRepo.GetByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		return nil, err
	}
	if record != nil && record.Section(granularity) != nil {
		return record, nil
	}

	facility, err := s.facilityRepo.GetByUserID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, fmt.Errorf("facility %s não encontrada", facilityID)
	}

	baseline, err := s.fetchPreviousBaseline(ctx, facilityID, date, granularity)
	if err != nil {
		return nil, err
	}

	record = &domain.FacilityMetric{
		FacilityID:   facility.UserID,
		FacilityType: facility.Type,
		Name:         facility.Name,
		Date:         date,
	}
	record.SetSection(granularity, baseline)

	return record, nil
}

// fetchPreviousBaseline devolve o breakdown do período anterior já no formato
// previous*: copiado do current* armazenado quando há registro, recalculado do
// ledger quando não há
func (s *Service) fetchPreviousBaseline(ctx context.Context, facilityID string, date time.Time, granularity domain.Granularity) (domain.Breakdown, error) {
	prevDate := s.periods.PreviousPeriod(date, granularity)

	prevRecord, err := s.metricRepo.GetByFacilityAndDate(ctx, facilityID, prevDate)
	if err != nil {
		return nil, err
	}

	if prevRecord != nil && prevRecord.Section(granularity) != nil {
		baseline := domain.Breakdown{}
		for reqType, entry := range prevRecord.Section(granularity) {
			baseline[reqType] = &domain.Metric{
				PreviousShifts:  entry.CurrentShifts,
				PreviousRevenue: entry.CurrentRevenue,
			}
		}
		return baseline, nil
	}

	return s.calculateBreakdown(ctx, facilityID, prevDate, granularity, true)
}

func (s *Service) calculateBreakdown(ctx context.Context, facilityID string, start time.Time, granularity domain.Granularity, asPrevious bool) (domain.Breakdown, error) {
	end := s.periods.NextPeriod(start, granularity)

	aggregates, err := s.shiftRepo.AggregateByRequirement(ctx, facilityID, start, end)
	if err != nil {
		return nil, err
	}

	return buildBreakdown(aggregates, asPrevious), nil
}

// cascadeNext grava o current* recém-computado como previous* do período
// seguinte e recalcula o churn dele. A propagação é de um único salto: nada
// além do período adjacente é tocado.
func (s *Service) cascadeNext(ctx context.Context, facilityID string, date time.Time, granularity domain.Granularity, current domain.Breakdown) error {
	nextDate := s.periods.NextPeriod(date, granularity)

	nextRecord, err := s.metricRepo.GetByFacilityAndDate(ctx, facilityID, nextDate)
	if err != nil {
		return err
	}

	var nextSection domain.Breakdown
	if nextRecord != nil {
		nextSection = nextRecord.Section(granularity)
	}

	newSection := domain.Breakdown{}
	for _, reqType := range unionKeys(nextSection, current) {
		nextEntry := nextSection[reqType]
		curEntry := current[reqType]

		entry := &domain.Metric{}
		if nextEntry != nil {
			*entry = *nextEntry
		}

		var thisShifts *domain.ShiftCounts
		var thisRevenue *domain.RevenueMetrics
		if curEntry != nil {
			thisShifts = curEntry.CurrentShifts
			thisRevenue = curEntry.CurrentRevenue
		}

		var nextShifts *domain.ShiftCounts
		var nextRevenue *domain.RevenueMetrics
		if nextEntry != nil {
			nextShifts = nextEntry.CurrentShifts
			nextRevenue = nextEntry.CurrentRevenue
		}

		entry.PreviousShifts = thisShifts
		entry.PreviousRevenue = thisRevenue
		entry.ChurnShifts = churnShiftCounts(nextShifts, thisShifts)
		entry.ChurnRevenue = churnRevenueMetrics(nextRevenue, thisRevenue)

		newSection[reqType] = entry
	}

	if nextRecord == nil {
		facility, err := s.facilityRepo.GetByUserID(ctx, facilityID)
		if err != nil {
			return err
		}
		if facility == nil {
			return fmt.Errorf("facility %s não encontrada", facilityID)
		}

		nextRecord = &domain.FacilityMetric{
			FacilityID:   facility.UserID,
			FacilityType: facility.Type,
			Name:         facility.Name,
			Date:         nextDate,
		}
	}

	nextRecord.SetSection(granularity, newSection)
	return s.metricRepo.UpsertSection(ctx, nextRecord, granularity)
}

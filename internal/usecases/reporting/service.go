package reporting

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/caretide/facility-metrics-api/infrastructure/repository"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/internal/usecases/aggregating"
)

// Reporter expõe as leituras de métricas consumidas pelos relatórios e pela UI.
// As rotas nunca mutam registros: só o engine de agregação escreve.
type Reporter interface {
	// GetFacilityMonthlyMetric retorna o registro mensal de uma facility mais o
	// perfil dela; nil quando nem registro nem facility existem
	GetFacilityMonthlyMetric(ctx context.Context, facilityID string, month time.Time) (*domain.FacilityMetricDetails, error)
	// ListMonthlySummaries lista os registros com seção mensal, opcionalmente
	// restritos às facilities de um customer success manager
	ListMonthlySummaries(ctx context.Context, csmID string) ([]*domain.FacilityMetric, error)
	// WriteChurnCSV escreve o CSV de churn de um período (semanal ou mensal)
	WriteChurnCSV(ctx context.Context, granularity domain.Granularity, date time.Time, w io.Writer) error
	// Location é o fuso de referência dos períodos; datas vindas das rotas devem
	// ser interpretadas nele (os registros são chaveados nesse fuso)
	Location() *time.Location
}

type Service struct {
	metricRepo   repository.FacilityMetricRepository
	facilityRepo repository.FacilityRepository
	periods      *aggregating.PeriodResolver
}

func NewService(
	metricRepo repository.FacilityMetricRepository,
	facilityRepo repository.FacilityRepository,
	periods *aggregating.PeriodResolver,
) *Service {
	return &Service{
		metricRepo:   metricRepo,
		facilityRepo: facilityRepo,
		periods:      periods,
	}
}

func (s *Service) Location() *time.Location {
	return s.periods.Location()
}

func (s *Service) GetFacilityMonthlyMetric(ctx context.Context, facilityID string, month time.Time) (*domain.FacilityMetricDetails, error) {
	date := s.periods.PeriodStart(month, domain.GranularityMonthly)

	record, err := s.metricRepo.GetByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		return nil, err
	}
	if record != nil && record.Monthly == nil {
		// Registro só com seções diárias/semanais não conta como métrica mensal
		record = nil
	}

	facility, err := s.facilityRepo.GetByUserID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if record == nil && facility == nil {
		return nil, nil
	}

	return &domain.FacilityMetricDetails{
		Metric:   record,
		Facility: facility,
	}, nil
}

func (s *Service) ListMonthlySummaries(ctx context.Context, csmID string) ([]*domain.FacilityMetric, error) {
	var facilityIDs []string

	if csmID != "" {
		facilities, err := s.facilityRepo.ListByCustomerSuccessManager(ctx, csmID)
		if err != nil {
			return nil, err
		}
		if len(facilities) == 0 {
			return []*domain.FacilityMetric{}, nil
		}

		facilityIDs = make([]string, 0, len(facilities))
		for _, facility := range facilities {
			facilityIDs = append(facilityIDs, facility.UserID)
		}
	}

	return s.metricRepo.ListMonthly(ctx, facilityIDs)
}

var churnCSVHeader = []string{
	"facility_id", "name", "type", "city", "state",
	"requested", "filled", "fill_rate", "unique_workers",
	"prev_requested", "prev_filled",
	"churn_requested", "churn_filled", "churn_fill_rate",
	"expected_revenue", "gross_revenue", "net_revenue", "avg_margin",
	"churn_gross_revenue", "churn_net_revenue",
}

func (s *Service) WriteChurnCSV(ctx context.Context, granularity domain.Granularity, date time.Time, w io.Writer) error {
	if granularity != domain.GranularityWeekly && granularity != domain.GranularityMonthly {
		return fmt.Errorf("churn export só suporta granularidade semanal ou mensal, recebido %q", granularity)
	}

	periodStart := s.periods.PeriodStart(date, granularity)

	metrics, err := s.metricRepo.ListByDate(ctx, periodStart)
	if err != nil {
		return err
	}

	facilities, err := s.facilityRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	facilitiesByID := make(map[string]*domain.FacilityProfile, len(facilities))
	for _, facility := range facilities {
		facilitiesByID[facility.UserID] = facility
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(churnCSVHeader); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho do CSV: %w", err)
	}

	for _, metric := range metrics {
		section := metric.Section(granularity)
		if section == nil {
			continue
		}

		entry := section[domain.RequirementTypeAll]
		if entry == nil {
			continue
		}

		var city, state string
		if facility := facilitiesByID[metric.FacilityID]; facility != nil && facility.FullAddress != nil {
			city = facility.FullAddress.City
			state = facility.FullAddress.State
		}

		row := []string{
			metric.FacilityID,
			metric.Name,
			metric.FacilityType,
			city,
			state,
		}
		row = append(row, shiftCountColumns(entry.CurrentShifts)...)
		row = append(row, previousShiftColumns(entry.PreviousShifts)...)
		row = append(row, churnShiftColumns(entry.ChurnShifts)...)
		row = append(row, revenueColumns(entry.CurrentRevenue)...)
		row = append(row, churnRevenueColumns(entry.ChurnRevenue)...)

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("erro ao escrever linha do CSV: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMetricValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func shiftCountColumns(counts *domain.ShiftCounts) []string {
	if counts == nil {
		counts = &domain.ShiftCounts{}
	}
	return []string{
		formatMetricValue(counts.Requested),
		formatMetricValue(counts.Filled),
		formatMetricValue(counts.FillRate),
		formatMetricValue(counts.UniqueWorkers),
	}
}

func previousShiftColumns(counts *domain.ShiftCounts) []string {
	if counts == nil {
		counts = &domain.ShiftCounts{}
	}
	return []string{
		formatMetricValue(counts.Requested),
		formatMetricValue(counts.Filled),
	}
}

func churnShiftColumns(counts *domain.ShiftCounts) []string {
	if counts == nil {
		counts = &domain.ShiftCounts{}
	}
	return []string{
		formatMetricValue(counts.Requested),
		formatMetricValue(counts.Filled),
		formatMetricValue(counts.FillRate),
	}
}

func revenueColumns(revenue *domain.RevenueMetrics) []string {
	if revenue == nil {
		revenue = &domain.RevenueMetrics{}
	}
	return []string{
		formatMetricValue(revenue.Expected),
		formatMetricValue(revenue.Gross),
		formatMetricValue(revenue.Net),
		formatMetricValue(revenue.AvgMargin),
	}
}

func churnRevenueColumns(revenue *domain.RevenueMetrics) []string {
	if revenue == nil {
		revenue = &domain.RevenueMetrics{}
	}
	return []string{
		formatMetricValue(revenue.Gross),
		formatMetricValue(revenue.Net),
	}
}

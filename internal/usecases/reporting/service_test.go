package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/caretide/facility-metrics-api/infrastructure/repository/mocks"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/internal/usecases/aggregating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func losAngeles(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func newTestService(t *testing.T) (*Service, *mocks.MockFacilityMetricRepository, *mocks.MockFacilityRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	metricRepo := mocks.NewMockFacilityMetricRepository(ctrl)
	facilityRepo := mocks.NewMockFacilityRepository(ctrl)
	service := NewService(metricRepo, facilityRepo, aggregating.NewPeriodResolver(losAngeles(t)))

	return service, metricRepo, facilityRepo
}

func TestService_GetFacilityMonthlyMetric(t *testing.T) {
	t.Run("Normaliza a data para o início do mês", func(t *testing.T) {
		service, metricRepo, facilityRepo := newTestService(t)

		loc := losAngeles(t)
		monthStart := time.Date(2025, 1, 1, 0, 0, 0, 0, loc)
		record := &domain.FacilityMetric{
			FacilityID: "fac-001",
			Date:       monthStart,
			Monthly: domain.Breakdown{
				domain.RequirementTypeAll: {CurrentShifts: &domain.ShiftCounts{Requested: 5}},
			},
		}
		facility := &domain.FacilityProfile{UserID: "fac-001", Name: "Mercy General"}

		metricRepo.EXPECT().
			GetByFacilityAndDate(gomock.Any(), "fac-001", monthStart).
			Return(record, nil)
		facilityRepo.EXPECT().
			GetByUserID(gomock.Any(), "fac-001").
			Return(facility, nil)

		details, err := service.GetFacilityMonthlyMetric(context.Background(), "fac-001", time.Date(2025, 1, 17, 15, 30, 0, 0, loc))
		require.NoError(t, err)
		require.NotNil(t, details)
		assert.Equal(t, record, details.Metric)
		assert.Equal(t, facility, details.Facility)
	})

	t.Run("Registro sem seção mensal não conta como métrica", func(t *testing.T) {
		service, metricRepo, facilityRepo := newTestService(t)

		record := &domain.FacilityMetric{
			FacilityID: "fac-001",
			Weekly: domain.Breakdown{
				domain.RequirementTypeAll: {CurrentShifts: &domain.ShiftCounts{Requested: 5}},
			},
		}
		facility := &domain.FacilityProfile{UserID: "fac-001"}

		metricRepo.EXPECT().GetByFacilityAndDate(gomock.Any(), "fac-001", gomock.Any()).Return(record, nil)
		facilityRepo.EXPECT().GetByUserID(gomock.Any(), "fac-001").Return(facility, nil)

		details, err := service.GetFacilityMonthlyMetric(context.Background(), "fac-001", time.Now())
		require.NoError(t, err)
		require.NotNil(t, details)
		assert.Nil(t, details.Metric)
		assert.Equal(t, facility, details.Facility)
	})

	t.Run("Sem registro e sem facility retorna nil", func(t *testing.T) {
		service, metricRepo, facilityRepo := newTestService(t)

		metricRepo.EXPECT().GetByFacilityAndDate(gomock.Any(), "fac-999", gomock.Any()).Return(nil, nil)
		facilityRepo.EXPECT().GetByUserID(gomock.Any(), "fac-999").Return(nil, nil)

		details, err := service.GetFacilityMonthlyMetric(context.Background(), "fac-999", time.Now())
		require.NoError(t, err)
		assert.Nil(t, details)
	})
}

func TestService_ListMonthlySummaries(t *testing.T) {
	t.Run("Sem filtro lista todas as facilities", func(t *testing.T) {
		service, metricRepo, _ := newTestService(t)

		expected := []*domain.FacilityMetric{{FacilityID: "fac-001"}, {FacilityID: "fac-002"}}
		metricRepo.EXPECT().ListMonthly(gomock.Any(), gomock.Nil()).Return(expected, nil)

		metrics, err := service.ListMonthlySummaries(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, expected, metrics)
	})

	t.Run("Com CSM restringe às facilities da carteira", func(t *testing.T) {
		service, metricRepo, facilityRepo := newTestService(t)

		facilityRepo.EXPECT().
			ListByCustomerSuccessManager(gomock.Any(), "csm-ana").
			Return([]*domain.FacilityProfile{{UserID: "fac-001"}, {UserID: "fac-003"}}, nil)
		metricRepo.EXPECT().
			ListMonthly(gomock.Any(), []string{"fac-001", "fac-003"}).
			Return([]*domain.FacilityMetric{{FacilityID: "fac-001"}}, nil)

		metrics, err := service.ListMonthlySummaries(context.Background(), "csm-ana")
		require.NoError(t, err)
		assert.Len(t, metrics, 1)
	})

	t.Run("CSM sem facilities encurta para lista vazia", func(t *testing.T) {
		service, _, facilityRepo := newTestService(t)

		facilityRepo.EXPECT().
			ListByCustomerSuccessManager(gomock.Any(), "csm-novo").
			Return([]*domain.FacilityProfile{}, nil)

		metrics, err := service.ListMonthlySummaries(context.Background(), "csm-novo")
		require.NoError(t, err)
		assert.Empty(t, metrics)
	})
}

func TestService_WriteChurnCSV(t *testing.T) {
	t.Run("Exporta o bucket all de cada facility com cidade e estado", func(t *testing.T) {
		service, metricRepo, facilityRepo := newTestService(t)

		loc := losAngeles(t)
		weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, loc)

		metrics := []*domain.FacilityMetric{
			{
				FacilityID:   "fac-001",
				Name:         "Mercy General",
				FacilityType: "hospital",
				Date:         weekStart,
				Weekly: domain.Breakdown{
					domain.RequirementTypeAll: {
						CurrentShifts:  &domain.ShiftCounts{Requested: 2, Filled: 1, FillRate: 50, UniqueWorkers: 1},
						PreviousShifts: &domain.ShiftCounts{Requested: 5, Filled: 4, FillRate: 80, UniqueWorkers: 3},
						ChurnShifts:    &domain.ShiftCounts{Requested: 3, Filled: 3, FillRate: 30, UniqueWorkers: 2},
						CurrentRevenue: &domain.RevenueMetrics{Expected: 640, Gross: 320, Net: 120, AvgMargin: 15},
						ChurnRevenue:   &domain.RevenueMetrics{Gross: 580, Net: 180.5},
					},
				},
			},
			{
				// Registro só com seção diária fica fora do export semanal
				FacilityID: "fac-002",
				Date:       weekStart,
				Daily: domain.Breakdown{
					domain.RequirementTypeAll: {CurrentShifts: &domain.ShiftCounts{Requested: 1}},
				},
			},
		}

		metricRepo.EXPECT().
			ListByDate(gomock.Any(), weekStart).
			Return(metrics, nil)
		facilityRepo.EXPECT().
			ListAll(gomock.Any()).
			Return([]*domain.FacilityProfile{
				{UserID: "fac-001", FullAddress: &domain.Address{City: "Sacramento", State: "CA"}},
			}, nil)

		var buf bytes.Buffer
		err := service.WriteChurnCSV(context.Background(), domain.GranularityWeekly, weekStart.Add(26*time.Hour), &buf)
		require.NoError(t, err)

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, churnCSVHeader, rows[0])
		assert.Equal(t, []string{
			"fac-001", "Mercy General", "hospital", "Sacramento", "CA",
			"2", "1", "50", "1",
			"5", "4",
			"3", "3", "30",
			"640", "320", "120", "15",
			"580", "180.5",
		}, rows[1])
	})

	t.Run("Granularidade diária é rejeitada", func(t *testing.T) {
		service, _, _ := newTestService(t)

		var buf bytes.Buffer
		err := service.WriteChurnCSV(context.Background(), domain.GranularityDaily, time.Now(), &buf)
		assert.Error(t, err)
		assert.Zero(t, buf.Len())
	})
}

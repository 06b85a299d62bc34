package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/caretide/facility-metrics-api/infrastructure/repository/mocks"
	"github.com/caretide/facility-metrics-api/internal/config"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/internal/usecases/aggregating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestBackfillSyncService(t *testing.T) *BackfillSyncService {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	shiftRepo := mocks.NewMockShiftRepository(ctrl)
	shiftRepo.EXPECT().
		ListPeriodBuckets(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.PeriodBucket{}, nil).
		AnyTimes()

	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	runner := aggregating.NewBackfillRunner(nil, shiftRepo, aggregating.NewPeriodResolver(loc), 1)

	cfg := &config.Config{
		BackfillSync: config.BackfillSync{
			CronSchedule:      "0 2 * * *",
			MaxConcurrentJobs: 1,
			Enabled:           false,
		},
	}

	return NewBackfillSyncService(runner, cfg)
}

func TestBackfillSyncService_TriggerManualSync(t *testing.T) {
	service := newTestBackfillSyncService(t)

	// GetStatus pode ser consultado enquanto o sync roda; os timestamps e o
	// flag de execução só são tocados sob o mutex
	done := make(chan struct{})
	var readers sync.WaitGroup
	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-done:
					return
				default:
					service.GetStatus()
				}
			}
		}()
	}

	service.TriggerManualSync(domain.GranularityDaily)

	require.Eventually(t, func() bool {
		status := service.GetStatus()
		running := status["sync_running"].(bool)
		completedAt := status["last_sync_completed_at"].(time.Time)
		return !running && !completedAt.IsZero()
	}, 5*time.Second, 10*time.Millisecond)

	close(done)
	readers.Wait()

	status := service.GetStatus()
	startedAt := status["last_sync_started_at"].(time.Time)
	completedAt := status["last_sync_completed_at"].(time.Time)

	assert.False(t, startedAt.IsZero())
	assert.False(t, completedAt.Before(startedAt))
	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, "0 2 * * *", status["sync_cron"])
}

func TestBackfillSyncService_StartDisabledByConfig(t *testing.T) {
	service := newTestBackfillSyncService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Com o sync desabilitado o Start não agenda nada nem retorna erro
	assert.NoError(t, service.Start(ctx))

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/caretide/facility-metrics-api/internal/config"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/internal/usecases/aggregating"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// BackfillSyncConfig representa a configuração do agendador de backfill de métricas
type BackfillSyncConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// BackfillSyncService gerencia o agendamento e execução do backfill de métricas
// de facilities. O backfill reconstrói o histórico das três granularidades a
// partir do ledger de plantões.
type BackfillSyncService struct {
	scheduler           *gocron.Scheduler
	config              BackfillSyncConfig
	runner              *aggregating.BackfillRunner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewBackfillSyncService cria uma nova instância do serviço de backfill de métricas
func NewBackfillSyncService(
	runner *aggregating.BackfillRunner,
	appConfig *config.Config,
) *BackfillSyncService {
	// Criar a configuração com base na config global
	syncConfig := BackfillSyncConfig{
		CronSchedule:      appConfig.BackfillSync.CronSchedule,
		MaxConcurrentJobs: appConfig.BackfillSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.BackfillSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de backfill de métricas carregada")

	return &BackfillSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		runner:      runner,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *BackfillSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Backfill agendado de métricas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de backfill de métricas")

	// Agendar o backfill de métricas
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncFacilityMetrics(context.Background(), domain.AllGranularities)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar backfill de métricas: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de backfill de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncFacilityMetrics reconstrói as métricas das granularidades informadas,
// uma de cada vez: dentro de cada granularidade os períodos já rodam em
// sequência para a cascata encontrar o antecessor persistido
func (s *BackfillSyncService) syncFacilityMetrics(ctx context.Context, granularities []domain.Granularity) {
	startTime := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Backfill de métricas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando backfill de métricas de facilities")

	for _, granularity := range granularities {
		if err := s.runner.Run(ctx, granularity); err != nil {
			logrus.WithError(err).WithField("granularity", granularity).
				Error("Erro no backfill de métricas")
		}
	}

	duration := time.Since(startTime)
	logrus.WithField("duration", duration.String()).Info("Backfill de métricas concluído")
}

// TriggerManualSync inicia manualmente um backfill das granularidades
// informadas; sem argumentos, das três
func (s *BackfillSyncService) TriggerManualSync(granularities ...domain.Granularity) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Backfill de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	if len(granularities) == 0 {
		granularities = domain.AllGranularities
	}

	logrus.WithField("granularities", granularities).Info("Iniciando backfill manual de métricas")
	go s.syncFacilityMetrics(context.Background(), granularities)
}

// GetStatus retorna o status atual do backfill
func (s *BackfillSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/caretide/facility-metrics-api/infrastructure/database/postgres"
	"github.com/caretide/facility-metrics-api/infrastructure/repository"
	"github.com/caretide/facility-metrics-api/internal/api"
	"github.com/caretide/facility-metrics-api/internal/config"
	"github.com/caretide/facility-metrics-api/internal/events"
	"github.com/caretide/facility-metrics-api/internal/scheduler"
	"github.com/caretide/facility-metrics-api/internal/usecases/aggregating"
	"github.com/caretide/facility-metrics-api/internal/usecases/reporting"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	shiftRepo := repository.NewShiftRepository(pgConn)
	metricRepo := repository.NewFacilityMetricRepository(pgConn)
	facilityRepo := repository.NewFacilityRepository(pgConn)

	// Resolver de períodos no fuso de referência das facilities
	location, err := time.LoadLocation(cfg.Metrics.Timezone)
	if err != nil {
		logrus.WithError(err).Fatalf("Fuso horário inválido: %s", cfg.Metrics.Timezone)
	}
	periods := aggregating.NewPeriodResolver(location)

	aggregatingService := aggregating.NewService(shiftRepo, metricRepo, facilityRepo, periods)
	reportingService := reporting.NewService(metricRepo, facilityRepo, periods)

	// Bus de eventos: o handler do engine de métricas consome os eventos de
	// plantão com concorrência limitada
	bus := events.NewBus()
	bus.Subscribe(
		events.TopicShiftUpdateFacilityMetric,
		aggregatingService.OnShiftUpdate,
		events.WithMaxInFlight(cfg.EventBus.MaxInFlight),
	)

	backfillRunner := aggregating.NewBackfillRunner(
		aggregatingService,
		shiftRepo,
		periods,
		cfg.BackfillSync.MaxConcurrentJobs,
	)

	// Inicializa o agendador de backfill de métricas
	backfillSyncService := scheduler.NewBackfillSyncService(backfillRunner, cfg)

	// Inicia o agendador em background
	if err := backfillSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de backfill de métricas")
	} else {
		logrus.Info("Agendador de backfill de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		bus,
		backfillSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

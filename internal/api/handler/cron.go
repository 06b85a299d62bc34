package handler

import (
	"encoding/json"
	"net/http"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/internal/scheduler"
	"github.com/caretide/facility-metrics-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobTypeAll dispara o backfill das três granularidades
const CronJobTypeAll = "all"

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	BackfillSyncService *scheduler.BackfillSyncService
}

// RunCronJob executa manualmente o backfill de uma granularidade (ou de todas)
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		if services.BackfillSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de backfill de métricas não disponível", nil)
			return
		}

		if cronType == CronJobTypeAll {
			services.BackfillSyncService.TriggerManualSync()
		} else {
			granularity, err := domain.ParseGranularity(cronType)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily, weekly, monthly, all", nil)
				return
			}
			services.BackfillSyncService.TriggerManualSync(granularity)
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"backfill": services.BackfillSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}

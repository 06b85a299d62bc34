package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/caretide/facility-metrics-api/internal/usecases/reporting"
	"github.com/caretide/facility-metrics-api/pkg/apiErrors"
	"github.com/caretide/facility-metrics-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// ListFacilityMetrics retorna os resumos mensais de todas as facilities,
// opcionalmente filtrados por customer success manager
func ListFacilityMetrics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		csmID := r.URL.Query().Get("csmId")

		logger.WithFields(log.Fields{
			"csm_id": csmID,
		}).Info("facility-metrics: listando resumos mensais")

		metrics, err := service.ListMonthlySummaries(r.Context(), csmID)
		if err != nil {
			logger.WithError(err).Error("facility-metrics: erro ao listar resumos mensais")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar métricas de facilities", nil)
			return
		}

		logger.WithFields(log.Fields{
			"facilities_returned": len(metrics),
		}).Info("facility-metrics: resumos mensais recuperados com sucesso")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics); err != nil {
			logger.WithError(err).Error("facility-metrics: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetFacilityMetric retorna o registro mensal de uma facility para o mês
// informado em ?month=YYYY-MM (mês corrente quando ausente)
func GetFacilityMetric(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		facilityID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if facilityID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da facility não informado", nil)
			return
		}

		// O mês é interpretado no fuso de referência: os registros são chaveados
		// no início do mês nesse fuso, não em UTC
		month := time.Now().In(service.Location())
		if monthParam := r.URL.Query().Get("month"); monthParam != "" {
			parsed, err := time.ParseInLocation("2006-01", monthParam, service.Location())
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use o formato YYYY-MM", nil)
				return
			}
			month = parsed
		}

		logger.WithFields(log.Fields{
			"facility_id": facilityID,
			"month":       month.Format("2006-01"),
		}).Info("facility-metrics: buscando métrica mensal da facility")

		details, err := service.GetFacilityMonthlyMetric(r.Context(), facilityID, month)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"facility_id": facilityID,
			}).Error("facility-metrics: erro ao buscar métrica mensal")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar métricas da facility", nil)
			return
		}

		if details == nil {
			apiErrors.WriteError(w, apiErrors.ErrFacilityNotFound, "Facility sem métricas para o período informado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(details); err != nil {
			logger.WithError(err).Error("facility-metrics: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/internal/events"
	"github.com/caretide/facility-metrics-api/pkg/apiErrors"
	"github.com/caretide/facility-metrics-api/pkg/log"
)

// PublishShiftUpdate recebe um evento do ciclo de vida de plantões e o publica
// no bus para processamento assíncrono. A resposta é 202: o recálculo acontece
// fora do ciclo da requisição.
func PublishShiftUpdate(bus *events.Bus) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var event domain.ShiftUpdateEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		// Evento precisa de shiftId ou do par facilityId+start para ser processável
		if event.ShiftID == "" && (event.FacilityID == "" || event.Start == nil) {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe shiftId ou facilityId e start", nil)
			return
		}

		// O contexto da requisição morre na resposta; a entrega usa um contexto
		// próprio que só carrega o ID de correlação
		ctx := context.WithValue(context.Background(), log.CorrelationIDKey, log.GetCorrelationID(r.Context()))
		bus.Publish(ctx, events.TopicShiftUpdateFacilityMetric, event)

		logger.WithFields(log.Fields{
			"shift_id":    event.ShiftID,
			"facility_id": event.FacilityID,
		}).Info("shift-events: evento de plantão publicado")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Evento aceito para processamento",
		})
	})
}

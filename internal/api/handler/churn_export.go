package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/internal/usecases/reporting"
	"github.com/caretide/facility-metrics-api/pkg/apiErrors"
	"github.com/caretide/facility-metrics-api/pkg/log"
	"github.com/caretide/facility-metrics-api/pkg/utils"
)

// churnExportRequest é o corpo do POST de exportação de churn
type churnExportRequest struct {
	Type string `json:"type"` // weekly ou monthly
	Date string `json:"date"`
}

// ExportChurnCSV gera o CSV de churn de um período semanal ou mensal
func ExportChurnCSV(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req churnExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		granularity, err := domain.ParseGranularity(req.Type)
		if err != nil || granularity == domain.GranularityDaily {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Granularidade inválida. Valores aceitos: weekly, monthly", nil)
			return
		}

		// A data é interpretada no fuso de referência: os registros são chaveados
		// no início do período nesse fuso, não em UTC
		date := time.Now().In(service.Location())
		if req.Date != "" {
			parsed, err := utils.ParseDate(req.Date, service.Location())
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Use o formato YYYY-MM-DD", nil)
				return
			}
			date = *parsed
		}

		logger.WithFields(log.Fields{
			"granularity": granularity,
			"date":        date.Format(time.DateOnly),
		}).Info("churn-export: gerando CSV de churn")

		// Gera em memória antes de qualquer header: falha de leitura ainda pode
		// virar um status de erro de verdade
		var buf bytes.Buffer
		if err := service.WriteChurnCSV(r.Context(), granularity, date, &buf); err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"granularity": granularity,
			}).Error("churn-export: erro ao gerar CSV de churn")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar CSV de churn", nil)
			return
		}

		filename := fmt.Sprintf("churn-%s-%s.csv", granularity, date.Format(time.DateOnly))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Error("churn-export: erro ao escrever a resposta")
			return
		}

		logger.Info("churn-export: CSV de churn gerado com sucesso")
	})
}

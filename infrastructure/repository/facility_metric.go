package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/caretide/facility-metrics-api/infrastructure/database/postgres"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
)

// json das seções JSONB com a API compatível com a stdlib
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	facilityMetricsTable   = "facility_metrics fm"
	facilityMetricsColumns = "fm.id, fm.facility_id, fm.facility_type, fm.name, fm.date, fm.daily, fm.weekly, fm.monthly, fm.created_at, fm.updated_at"
)

type FacilityMetricRepository interface {
	// GetByFacilityAndDate retorna o registro da facility para o início de período
	// informado, ou nil quando ainda não existe
	GetByFacilityAndDate(ctx context.Context, facilityID string, date time.Time) (*domain.FacilityMetric, error)
	// UpsertSection grava o registro substituindo por inteiro a seção da
	// granularidade informada; identidade da facility só é preenchida se ausente
	UpsertSection(ctx context.Context, metric *domain.FacilityMetric, granularity domain.Granularity) error
	// ListMonthly retorna os registros com seção mensal, opcionalmente restritos
	// às facilities informadas (nil = todas)
	ListMonthly(ctx context.Context, facilityIDs []string) ([]*domain.FacilityMetric, error)
	// ListByDate retorna todos os registros de um início de período (churn export)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.FacilityMetric, error)
}

type facilityMetricRepository struct {
	conn *postgres.Connection
}

func NewFacilityMetricRepository(conn *postgres.Connection) FacilityMetricRepository {
	return &facilityMetricRepository{
		conn: conn,
	}
}

func (r *facilityMetricRepository) GetByFacilityAndDate(ctx context.Context, facilityID string, date time.Time) (*domain.FacilityMetric, error) {
	query, args, err := squirrel.
		Select(facilityMetricsColumns).
		From(facilityMetricsTable).
		Where(squirrel.Eq{"fm.facility_id": facilityID, "fm.date": date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	metric, err := scanFacilityMetric(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear registro de métricas: %w", err)
	}

	return metric, nil
}

func (r *facilityMetricRepository) UpsertSection(ctx context.Context, metric *domain.FacilityMetric, granularity domain.Granularity) error {
	section := metric.Section(granularity)
	if err := section.Validate(); err != nil {
		return err
	}

	sectionJSON, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("erro ao serializar seção %s para JSON: %w", granularity, err)
	}

	// A coluna vem do enum de granularidade, nunca de entrada externa
	column := string(granularity)

	// O id só vale para a linha nova; no conflito a existente permanece
	id, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("erro ao gerar id do registro: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("facility_metrics").
		Columns("id", "facility_id", "facility_type", "name", "date", column).
		Values(
			id,
			metric.FacilityID,
			metric.FacilityType,
			metric.Name,
			metric.Date,
			sectionJSON,
		).
		Suffix(fmt.Sprintf(`
			ON CONFLICT (facility_id, date) DO UPDATE SET
				%[1]s = EXCLUDED.%[1]s,
				facility_type = COALESCE(NULLIF(facility_metrics.facility_type, ''), EXCLUDED.facility_type),
				name = COALESCE(NULLIF(facility_metrics.name, ''), EXCLUDED.name),
				updated_at = NOW()
		`, column)).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *facilityMetricRepository) ListMonthly(ctx context.Context, facilityIDs []string) ([]*domain.FacilityMetric, error) {
	builder := squirrel.
		Select("fm.id, fm.facility_id, fm.facility_type, fm.name, fm.date, NULL, NULL, fm.monthly, fm.created_at, fm.updated_at").
		From(facilityMetricsTable).
		Where("fm.monthly IS NOT NULL").
		OrderBy("fm.date DESC, fm.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if facilityIDs != nil {
		builder = builder.Where(squirrel.Eq{"fm.facility_id": facilityIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryMetrics(ctx, query, args)
}

func (r *facilityMetricRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.FacilityMetric, error) {
	query, args, err := squirrel.
		Select(facilityMetricsColumns).
		From(facilityMetricsTable).
		Where(squirrel.Eq{"fm.date": date}).
		OrderBy("fm.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryMetrics(ctx, query, args)
}

func (r *facilityMetricRepository) queryMetrics(ctx context.Context, query string, args []interface{}) ([]*domain.FacilityMetric, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.FacilityMetric, 0)
	for rows.Next() {
		metric, err := scanFacilityMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de métricas: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacilityMetric(row rowScanner) (*domain.FacilityMetric, error) {
	metric := &domain.FacilityMetric{}
	var dailyJSON, weeklyJSON, monthlyJSON []byte

	err := row.Scan(
		&metric.ID,
		&metric.FacilityID,
		&metric.FacilityType,
		&metric.Name,
		&metric.Date,
		&dailyJSON,
		&weeklyJSON,
		&monthlyJSON,
		&metric.CreatedAt,
		&metric.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sections := []struct {
		granularity domain.Granularity
		raw         []byte
	}{
		{domain.GranularityDaily, dailyJSON},
		{domain.GranularityWeekly, weeklyJSON},
		{domain.GranularityMonthly, monthlyJSON},
	}

	for _, s := range sections {
		if s.raw == nil {
			continue
		}

		breakdown := domain.Breakdown{}
		if err := json.Unmarshal(s.raw, &breakdown); err != nil {
			return nil, fmt.Errorf("erro ao deserializar seção %s: %w", s.granularity, err)
		}
		if err := breakdown.Validate(); err != nil {
			return nil, err
		}
		metric.SetSection(s.granularity, breakdown)
	}

	return metric, nil
}

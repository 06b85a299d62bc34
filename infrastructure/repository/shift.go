package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/caretide/facility-metrics-api/infrastructure/database/postgres"
	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/lib/pq"
)

const shiftsTable = "shifts s"

// dateTruncField traduz a granularidade para o date_trunc do Postgres.
// date_trunc('week') trunca para a segunda-feira ISO, igual ao PeriodResolver.
var dateTruncField = map[domain.Granularity]string{
	domain.GranularityDaily:   "day",
	domain.GranularityWeekly:  "week",
	domain.GranularityMonthly: "month",
}

type ShiftRepository interface {
	// GetShiftRef retorna a projeção mínima do plantão para enriquecer eventos;
	// nil quando o plantão não existe
	GetShiftRef(ctx context.Context, shiftID string) (*domain.ShiftRef, error)
	// AggregateByRequirement computa os números crus por requirement type dos
	// plantões com start na janela semiaberta [start, end)
	AggregateByRequirement(ctx context.Context, facilityID string, start, end time.Time) ([]*domain.ShiftAggregate, error)
	// ListPeriodBuckets retorna, em ordem cronológica, cada período histórico com
	// atividade e as facilities ativas nele (usado pelo backfill)
	ListPeriodBuckets(ctx context.Context, granularity domain.Granularity, timezone string) ([]*domain.PeriodBucket, error)
}

type shiftRepository struct {
	conn *postgres.Connection
}

func NewShiftRepository(conn *postgres.Connection) ShiftRepository {
	return &shiftRepository{
		conn: conn,
	}
}

func (r *shiftRepository) GetShiftRef(ctx context.Context, shiftID string) (*domain.ShiftRef, error) {
	query, args, err := squirrel.
		Select("s.id, s.facility_id, s.start").
		From(shiftsTable).
		Where(squirrel.Eq{"s.id": shiftID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ref := &domain.ShiftRef{}
	row := r.conn.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&ref.ID, &ref.FacilityID, &ref.Start); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear plantão: %w", err)
	}

	return ref, nil
}

func (r *shiftRepository) AggregateByRequirement(ctx context.Context, facilityID string, start, end time.Time) ([]*domain.ShiftAggregate, error) {
	// Plantão qualifica se não foi deletado, ou se foi deletado mas ainda fatura
	// (taxa de cancelamento tardio). Preenchido exige agente e não-deletado;
	// gross/net contam qualquer plantão com agente, inclusive o deletado faturável.
	query, args, err := squirrel.
		Select(
			"s.agent_req",
			"COUNT(*) AS requested",
			"COUNT(*) FILTER (WHERE s.agent_id IS NOT NULL AND NOT s.deleted) AS filled",
			"COUNT(DISTINCT s.agent_id) FILTER (WHERE NOT s.deleted) AS unique_workers",
			"COALESCE(SUM(s.time * s.charge) FILTER (WHERE NOT s.deleted), 0) AS expected_revenue",
			"COALESCE(SUM(s.time * s.charge) FILTER (WHERE s.agent_id IS NOT NULL), 0) AS gross_revenue",
			"COALESCE(SUM(s.time * (s.charge - s.pay)) FILTER (WHERE s.agent_id IS NOT NULL), 0) AS net_revenue",
			"COALESCE(SUM(s.charge - s.pay) FILTER (WHERE s.agent_id IS NOT NULL AND NOT s.deleted), 0) AS total_margin",
		).
		From(shiftsTable).
		Where(squirrel.Eq{"s.facility_id": facilityID}).
		Where(squirrel.GtOrEq{"s.start": start}).
		Where(squirrel.Lt{"s.start": end}).
		Where(squirrel.Or{
			squirrel.Eq{"s.deleted": false},
			squirrel.And{
				squirrel.Eq{"s.deleted": true},
				squirrel.Eq{"s.is_billable": true},
			},
		}).
		GroupBy("s.agent_req").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de agregação: %w", err)
	}
	defer rows.Close()

	aggregates := make([]*domain.ShiftAggregate, 0)
	for rows.Next() {
		var agentReq string
		agg := &domain.ShiftAggregate{}

		err := rows.Scan(
			&agentReq,
			&agg.Requested,
			&agg.Filled,
			&agg.UniqueWorkers,
			&agg.ExpectedRevenue,
			&agg.GrossRevenue,
			&agg.NetRevenue,
			&agg.TotalMargin,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear agregado de plantões: %w", err)
		}

		// Valores fora do enum indicam ledger corrompido: aborta a rodada
		agg.RequirementType, err = domain.ParseRequirementType(agentReq)
		if err != nil {
			return nil, fmt.Errorf("agregado de plantões da facility %s: %w", facilityID, err)
		}

		aggregates = append(aggregates, agg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return aggregates, nil
}

func (r *shiftRepository) ListPeriodBuckets(ctx context.Context, granularity domain.Granularity, timezone string) ([]*domain.PeriodBucket, error) {
	field, ok := dateTruncField[granularity]
	if !ok {
		return nil, fmt.Errorf("granularidade inválida: %q", granularity)
	}

	query, args, err := squirrel.
		Select(
			fmt.Sprintf("date_trunc('%s', s.start AT TIME ZONE $1) AS bucket", field),
			"ARRAY_AGG(DISTINCT s.facility_id) AS facilities",
		).
		From(shiftsTable).
		Where("NOT s.deleted").
		GroupBy("bucket").
		OrderBy("bucket ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	args = append([]interface{}{timezone}, args...)

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de buckets: %w", err)
	}
	defer rows.Close()

	buckets := make([]*domain.PeriodBucket, 0)
	for rows.Next() {
		bucket := &domain.PeriodBucket{}
		var facilityIDs pq.StringArray

		if err := rows.Scan(&bucket.Start, &facilityIDs); err != nil {
			return nil, fmt.Errorf("erro ao escanear bucket de período: %w", err)
		}

		bucket.FacilityIDs = facilityIDs
		buckets = append(buckets, bucket)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return buckets, nil
}

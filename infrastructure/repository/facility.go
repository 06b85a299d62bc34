package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/caretide/facility-metrics-api/infrastructure/database/postgres"
	"github.com/caretide/facility-metrics-api/internal/domain"
)

const (
	facilityProfilesTable   = "facility_profiles fp"
	facilityProfilesColumns = "fp.user_id, fp.name, fp.type, fp.customer_success_manager, fp.city, fp.state, fp.qualified_agents, fp.created_at"
)

type FacilityRepository interface {
	// GetByUserID retorna o perfil da facility, ou nil quando não existe
	GetByUserID(ctx context.Context, userID string) (*domain.FacilityProfile, error)
	// ListByCustomerSuccessManager retorna as facilities atendidas por um CSM
	ListByCustomerSuccessManager(ctx context.Context, csmID string) ([]*domain.FacilityProfile, error)
	// ListAll retorna todos os perfis (usado pelo churn export)
	ListAll(ctx context.Context) ([]*domain.FacilityProfile, error)
}

type facilityRepository struct {
	conn *postgres.Connection
}

func NewFacilityRepository(conn *postgres.Connection) FacilityRepository {
	return &facilityRepository{
		conn: conn,
	}
}

func (r *facilityRepository) GetByUserID(ctx context.Context, userID string) (*domain.FacilityProfile, error) {
	query, args, err := squirrel.
		Select(facilityProfilesColumns).
		From(facilityProfilesTable).
		Where(squirrel.Eq{"fp.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	facility, err := scanFacilityProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear perfil de facility: %w", err)
	}

	return facility, nil
}

func (r *facilityRepository) ListByCustomerSuccessManager(ctx context.Context, csmID string) ([]*domain.FacilityProfile, error) {
	query, args, err := squirrel.
		Select(facilityProfilesColumns).
		From(facilityProfilesTable).
		Where(squirrel.Eq{"fp.customer_success_manager": csmID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryProfiles(ctx, query, args)
}

func (r *facilityRepository) ListAll(ctx context.Context) ([]*domain.FacilityProfile, error) {
	query, args, err := squirrel.
		Select(facilityProfilesColumns).
		From(facilityProfilesTable).
		OrderBy("fp.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryProfiles(ctx, query, args)
}

func (r *facilityRepository) queryProfiles(ctx context.Context, query string, args []interface{}) ([]*domain.FacilityProfile, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	facilities := make([]*domain.FacilityProfile, 0)
	for rows.Next() {
		facility, err := scanFacilityProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear perfil de facility: %w", err)
		}
		facilities = append(facilities, facility)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return facilities, nil
}

func scanFacilityProfile(row rowScanner) (*domain.FacilityProfile, error) {
	facility := &domain.FacilityProfile{}
	var csm sql.NullString
	var city, state sql.NullString
	var qualifiedAgentsJSON []byte

	err := row.Scan(
		&facility.UserID,
		&facility.Name,
		&facility.Type,
		&csm,
		&city,
		&state,
		&qualifiedAgentsJSON,
		&facility.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if csm.Valid {
		facility.CustomerSuccessManager = &csm.String
	}

	if city.Valid || state.Valid {
		facility.FullAddress = &domain.Address{
			City:  city.String,
			State: state.String,
		}
	}

	if qualifiedAgentsJSON != nil {
		if err := json.Unmarshal(qualifiedAgentsJSON, &facility.QualifiedAgents); err != nil {
			return nil, fmt.Errorf("erro ao deserializar qualified_agents: %w", err)
		}
	}

	return facility, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// MasterDataRepository persists catalog rows and configuration parameters.
type MasterDataRepository struct {
	db *sql.DB
}

func NewMasterDataRepository(db *sql.DB) *MasterDataRepository {
	return &MasterDataRepository{db: db}
}

func (r *MasterDataRepository) Create(ctx context.Context, m *domain.MasterData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO master_data (
			id, category, name, description, properties,
			is_active, created_by_user_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.Category,
		m.Name,
		m.Description,
		nullJSON(m.Properties),
		m.IsActive,
		m.CreatedByUserID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return conflictErr(err, domain.ErrMasterDataExists)
}

func (r *MasterDataRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MasterData, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, category, name, description, properties,
		       is_active, created_by_user_id, created_at, updated_at
		FROM master_data
		WHERE id = $1
	`, id)

	m, err := scanMasterData(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMasterDataNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MasterDataRepository) List(ctx context.Context, category string) ([]*domain.MasterData, error) {
	query := `
		SELECT id, category, name, description, properties,
		       is_active, created_by_user_id, created_at, updated_at
		FROM master_data`
	var args []any
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.MasterData
	for rows.Next() {
		m, err := scanMasterData(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MasterDataRepository) Update(ctx context.Context, m *domain.MasterData) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE master_data
		SET name = $2,
		    description = $3,
		    properties = $4,
		    is_active = $5,
		    updated_at = $6
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Description,
		nullJSON(m.Properties),
		m.IsActive,
		m.UpdatedAt,
	)
	if err != nil {
		return conflictErr(err, domain.ErrMasterDataExists)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrMasterDataNotFound
	}
	return nil
}

func (r *MasterDataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM master_data WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrMasterDataNotFound
	}
	return nil
}

func (r *MasterDataRepository) UpsertParameter(ctx context.Context, p *domain.ConfigParameter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config_parameters (
			id, parameter_name, parameter_value, data_type,
			description, last_updated_by_user_id, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (parameter_name) DO UPDATE
		SET parameter_value = EXCLUDED.parameter_value,
		    data_type = EXCLUDED.data_type,
		    description = EXCLUDED.description,
		    last_updated_by_user_id = EXCLUDED.last_updated_by_user_id,
		    updated_at = EXCLUDED.updated_at
	`,
		p.ID,
		p.Name,
		p.Value,
		p.DataType,
		p.Description,
		p.LastUpdatedByUserID,
		p.UpdatedAt,
	)
	return err
}

func (r *MasterDataRepository) FindParameterByName(ctx context.Context, name string) (*domain.ConfigParameter, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, parameter_name, parameter_value, data_type,
		       description, last_updated_by_user_id, updated_at
		FROM config_parameters
		WHERE parameter_name = $1
	`, name)

	var p domain.ConfigParameter
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Value,
		&p.DataType,
		&p.Description,
		&p.LastUpdatedByUserID,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrParamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MasterDataRepository) ListParameters(ctx context.Context) ([]*domain.ConfigParameter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, parameter_name, parameter_value, data_type,
		       description, last_updated_by_user_id, updated_at
		FROM config_parameters
		ORDER BY parameter_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var params []*domain.ConfigParameter
	for rows.Next() {
		var p domain.ConfigParameter
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Value,
			&p.DataType,
			&p.Description,
			&p.LastUpdatedByUserID,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		params = append(params, &p)
	}
	return params, rows.Err()
}

func (r *MasterDataRepository) DeleteParameter(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM config_parameters WHERE parameter_name = $1`, name)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrParamNotFound
	}
	return nil
}

func scanMasterData(scan func(...any) error) (*domain.MasterData, error) {
	var m domain.MasterData
	var props []byte
	err := scan(
		&m.ID,
		&m.Category,
		&m.Name,
		&m.Description,
		&props,
		&m.IsActive,
		&m.CreatedByUserID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Properties = props
	return &m, nil
}

// nullJSON stores empty raw JSON as NULL rather than the empty string,
// which jsonb rejects.
func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

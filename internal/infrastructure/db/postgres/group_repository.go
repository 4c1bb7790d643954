package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// GroupRepository persists groups (lotes) and their animal assignments.
type GroupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, g *domain.Group) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO groups (
			id, name, description, purpose_id,
			created_by_user_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		g.ID,
		g.Name,
		g.Description,
		g.PurposeID,
		g.CreatedByUserID,
		g.CreatedAt,
		g.UpdatedAt,
	)
	return err
}

func (r *GroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, purpose_id,
		       created_by_user_id, created_at, updated_at
		FROM groups
		WHERE id = $1
	`, id)

	var g domain.Group
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.PurposeID, &g.CreatedByUserID, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, purpose_id,
		       created_by_user_id, created_at, updated_at
		FROM groups
		WHERE created_by_user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.PurposeID, &g.CreatedByUserID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *GroupRepository) Update(ctx context.Context, g *domain.Group) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE groups
		SET name = $2,
		    description = $3,
		    purpose_id = $4,
		    updated_at = $5
		WHERE id = $1
	`,
		g.ID,
		g.Name,
		g.Description,
		g.PurposeID,
		g.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *GroupRepository) InsertAssignment(ctx context.Context, a *domain.GroupAssignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_group_assignments (
			group_id, animal_id, assigned_date, removed_date, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		a.GroupID,
		a.AnimalID,
		a.AssignedDate,
		a.RemovedDate,
		a.Notes,
		a.CreatedAt,
	)
	return conflictErr(err, domain.ErrAlreadyAssigned)
}

func (r *GroupRepository) SetRemovedDate(ctx context.Context, groupID, animalID uuid.UUID, removedDate time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_group_assignments
		SET removed_date = $3
		WHERE group_id = $1 AND animal_id = $2 AND removed_date IS NULL
	`, groupID, animalID, removedDate)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func (r *GroupRepository) ListAssignmentsByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupAssignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT group_id, animal_id, assigned_date, removed_date, notes, created_at
		FROM animal_group_assignments
		WHERE group_id = $1
		ORDER BY assigned_date DESC
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*domain.GroupAssignment
	for rows.Next() {
		var a domain.GroupAssignment
		if err := rows.Scan(&a.GroupID, &a.AnimalID, &a.AssignedDate, &a.RemovedDate, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

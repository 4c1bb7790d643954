package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// ActivityRepository persists the asynchronous activity feed.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, user_id, action, entity, entity_id, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.ID,
		e.UserID,
		e.Action,
		e.Entity,
		e.EntityID,
		e.At,
	)
	return err
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, action, entity, entity_id, occurred_at
		FROM activity_log
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Entity, &e.EntityID, &e.At); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

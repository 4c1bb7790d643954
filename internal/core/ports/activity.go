package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// ActivityRecorder accepts audit entries for asynchronous persistence.
// Record must never block the request path.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
}

// ActivityRepository defines persistence for the activity feed.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityEntry, error)
}

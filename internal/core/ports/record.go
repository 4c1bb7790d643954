package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// WeighingInput carries a new weight measurement.
type WeighingInput struct {
	AnimalID     uuid.UUID
	WeighingDate time.Time
	WeightKg     float64
	Notes        string
}

// TransactionInput carries a new traceability record.
type TransactionInput struct {
	Type            domain.TransactionType
	TransactionDate time.Time
	AnimalID        uuid.UUID
	FromFarmID      *uuid.UUID
	ToFarmID        *uuid.UUID
	ToOwnerUserID   *uuid.UUID
	PriceValue      *float64
	Reason          string
	TransportInfo   string
	Notes           string
}

// LocationEntryInput carries a new stay of an animal at a farm.
type LocationEntryInput struct {
	AnimalID  uuid.UUID
	FarmID    uuid.UUID
	EntryDate time.Time
	ExitDate  *time.Time
	Reason    string
	Notes     string
}

// RecordService defines use cases for per-animal husbandry records:
// weighings, transactions and location history. The caller must own the
// referenced animal.
type RecordService interface {
	CreateWeighing(ctx context.Context, actor Actor, in WeighingInput) (*domain.Weighing, error)
	GetWeighing(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Weighing, error)
	ListWeighings(ctx context.Context, actor Actor, animalID uuid.UUID) ([]*domain.Weighing, error)
	DeleteWeighing(ctx context.Context, actor Actor, id uuid.UUID) error

	CreateTransaction(ctx context.Context, actor Actor, in TransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, actor Actor, animalID uuid.UUID) ([]*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, actor Actor, id uuid.UUID) error

	CreateLocationEntry(ctx context.Context, actor Actor, in LocationEntryInput) (*domain.LocationEntry, error)
	GetLocationEntry(ctx context.Context, actor Actor, id uuid.UUID) (*domain.LocationEntry, error)
	// CloseLocationEntry sets the exit date on an open stay.
	CloseLocationEntry(ctx context.Context, actor Actor, id uuid.UUID, exitDate time.Time) (*domain.LocationEntry, error)
	ListLocationHistory(ctx context.Context, actor Actor, animalID uuid.UUID) ([]*domain.LocationEntry, error)
	DeleteLocationEntry(ctx context.Context, actor Actor, id uuid.UUID) error
}

// RecordRepository defines persistence for weighings, transactions and
// location history rows.
type RecordRepository interface {
	InsertWeighing(ctx context.Context, w *domain.Weighing) error
	FindWeighing(ctx context.Context, id uuid.UUID) (*domain.Weighing, error)
	ListWeighingsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.Weighing, error)
	DeleteWeighing(ctx context.Context, id uuid.UUID) error

	InsertTransaction(ctx context.Context, t *domain.Transaction) error
	FindTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListTransactionsByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	InsertLocationEntry(ctx context.Context, e *domain.LocationEntry) error
	FindLocationEntry(ctx context.Context, id uuid.UUID) (*domain.LocationEntry, error)
	SetLocationExit(ctx context.Context, id uuid.UUID, exitDate time.Time) error
	ListLocationHistoryByAnimal(ctx context.Context, animalID uuid.UUID) ([]*domain.LocationEntry, error)
	DeleteLocationEntry(ctx context.Context, id uuid.UUID) error
}

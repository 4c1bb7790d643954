package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// CreateFarmInput carries the fields accepted when registering a finca.
type CreateFarmInput struct {
	Name         string
	Location     string
	Latitude     *float64
	Longitude    *float64
	AreaHectares *float64
	ContactInfo  string
}

// UpdateFarmInput is a partial update; nil fields are left untouched.
type UpdateFarmInput struct {
	Name         *string
	Location     *string
	Latitude     *float64
	Longitude    *float64
	AreaHectares *float64
	ContactInfo  *string
}

// LotInput carries the fields of a physical farm section.
type LotInput struct {
	Name        string
	Description string
}

// GrantAccessInput shares a farm with another user, optionally until a
// given expiry.
type GrantAccessInput struct {
	UserID    uuid.UUID
	ExpiresAt *time.Time
}

// FarmService defines use cases for fincas and their lots. Mutations require
// ownership; reads also accept users the owner has shared the farm with.
type FarmService interface {
	CreateFarm(ctx context.Context, actor Actor, in CreateFarmInput) (*domain.Farm, error)
	GetFarm(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Farm, error)
	ListFarms(ctx context.Context, actor Actor) ([]*domain.Farm, error)
	UpdateFarm(ctx context.Context, actor Actor, id uuid.UUID, in UpdateFarmInput) (*domain.Farm, error)
	DeleteFarm(ctx context.Context, actor Actor, id uuid.UUID) error

	CreateLot(ctx context.Context, actor Actor, farmID uuid.UUID, in LotInput) (*domain.Lot, error)
	ListLots(ctx context.Context, actor Actor, farmID uuid.UUID) ([]*domain.Lot, error)
	UpdateLot(ctx context.Context, actor Actor, farmID, lotID uuid.UUID, in LotInput) (*domain.Lot, error)
	DeleteLot(ctx context.Context, actor Actor, farmID, lotID uuid.UUID) error

	GrantAccess(ctx context.Context, actor Actor, farmID uuid.UUID, in GrantAccessInput) (*domain.FarmAccess, error)
	RevokeAccess(ctx context.Context, actor Actor, farmID, userID uuid.UUID) error
	ListAccess(ctx context.Context, actor Actor, farmID uuid.UUID) ([]*domain.FarmAccess, error)
}

// FarmRepository defines persistence for farms and lots.
type FarmRepository interface {
	Create(ctx context.Context, f *domain.Farm) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Farm, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*domain.Farm, error)
	Update(ctx context.Context, f *domain.Farm) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateLot(ctx context.Context, l *domain.Lot) error
	FindLotByID(ctx context.Context, id uuid.UUID) (*domain.Lot, error)
	ListLotsByFarm(ctx context.Context, farmID uuid.UUID) ([]*domain.Lot, error)
	UpdateLot(ctx context.Context, l *domain.Lot) error
	DeleteLot(ctx context.Context, id uuid.UUID) error

	GrantAccess(ctx context.Context, a *domain.FarmAccess) error
	RevokeAccess(ctx context.Context, farmID, userID uuid.UUID) error
	// HasAccess reports whether the user holds an unexpired grant on the farm.
	HasAccess(ctx context.Context, farmID, userID uuid.UUID) (bool, error)
	ListAccessByFarm(ctx context.Context, farmID uuid.UUID) ([]*domain.FarmAccess, error)
}

package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// MasterDataInput carries a catalog row.
type MasterDataInput struct {
	Category    string
	Name        string
	Description string
	Properties  json.RawMessage
	IsActive    *bool
}

// UpdateMasterDataInput is a partial update; nil fields are left untouched.
// The category of a row never changes.
type UpdateMasterDataInput struct {
	Name        *string
	Description *string
	Properties  json.RawMessage
	IsActive    *bool
}

// ConfigParameterInput carries a typed application setting.
type ConfigParameterInput struct {
	Name        string
	Value       string
	DataType    domain.ParamDataType
	Description string
}

// MasterDataService defines use cases for catalog rows and configuration
// parameters. Writes are admin-only; reads are open to any authenticated
// user.
type MasterDataService interface {
	Create(ctx context.Context, actor Actor, in MasterDataInput) (*domain.MasterData, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.MasterData, error)
	List(ctx context.Context, category string) ([]*domain.MasterData, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateMasterDataInput) (*domain.MasterData, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error

	SetParameter(ctx context.Context, actor Actor, in ConfigParameterInput) (*domain.ConfigParameter, error)
	GetParameter(ctx context.Context, name string) (*domain.ConfigParameter, error)
	ListParameters(ctx context.Context) ([]*domain.ConfigParameter, error)
	DeleteParameter(ctx context.Context, actor Actor, name string) error
}

// MasterDataRepository defines persistence for catalog rows and
// configuration parameters.
type MasterDataRepository interface {
	Create(ctx context.Context, m *domain.MasterData) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MasterData, error)
	List(ctx context.Context, category string) ([]*domain.MasterData, error)
	Update(ctx context.Context, m *domain.MasterData) error
	Delete(ctx context.Context, id uuid.UUID) error

	UpsertParameter(ctx context.Context, p *domain.ConfigParameter) error
	FindParameterByName(ctx context.Context, name string) (*domain.ConfigParameter, error)
	ListParameters(ctx context.Context) ([]*domain.ConfigParameter, error)
	DeleteParameter(ctx context.Context, name string) error
}

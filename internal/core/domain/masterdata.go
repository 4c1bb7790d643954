package domain

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Master data categories referenced by other aggregates.
const (
	CategorySpecies      = "species"
	CategoryBreed        = "breed"
	CategoryProduct      = "product"
	CategoryFeedType     = "feed_type"
	CategorySupplement   = "supplement"
	CategoryGroupPurpose = "group_purpose"
)

var ErrMasterDataNotFound = errors.New("master data not found")
var ErrMasterDataExists = errors.New("master data name already used in this category")

// MasterData is a catalog row (species, breeds, products, feed types...).
// Name is unique per category.
type MasterData struct {
	ID              uuid.UUID       `json:"id"`
	Category        string          `json:"category"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Properties      json.RawMessage `json:"properties,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedByUserID uuid.UUID       `json:"created_by_user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ParamDataType declares how a configuration parameter value is interpreted.
type ParamDataType string

const (
	ParamString  ParamDataType = "string"
	ParamInteger ParamDataType = "integer"
	ParamFloat   ParamDataType = "float"
	ParamBoolean ParamDataType = "boolean"
	ParamDate    ParamDataType = "date"
	ParamJSON    ParamDataType = "json"
)

func (t ParamDataType) Valid() bool {
	switch t {
	case ParamString, ParamInteger, ParamFloat, ParamBoolean, ParamDate, ParamJSON:
		return true
	}
	return false
}

var ErrParamNotFound = errors.New("configuration parameter not found")
var ErrParamExists = errors.New("configuration parameter already exists")
var ErrParamValueMismatch = errors.New("parameter value does not match declared data type")

// ConfigParameter is a typed application setting editable by admins.
type ConfigParameter struct {
	ID                  uuid.UUID     `json:"id"`
	Name                string        `json:"parameter_name"`
	Value               string        `json:"parameter_value"`
	DataType            ParamDataType `json:"data_type"`
	Description         string        `json:"description,omitempty"`
	LastUpdatedByUserID uuid.UUID     `json:"last_updated_by_user_id"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// CheckValue verifies that value parses as the declared data type.
func (t ParamDataType) CheckValue(value string) error {
	switch t {
	case ParamString:
		return nil
	case ParamInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return ErrParamValueMismatch
		}
	case ParamFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return ErrParamValueMismatch
		}
	case ParamBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return ErrParamValueMismatch
		}
	case ParamDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return ErrParamValueMismatch
		}
	case ParamJSON:
		if !json.Valid([]byte(value)) {
			return ErrParamValueMismatch
		}
	default:
		return ErrParamValueMismatch
	}
	return nil
}

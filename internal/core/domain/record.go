package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrInvalidRecord = errors.New("invalid record payload")
var ErrDuplicateLocationEntry = errors.New("location entry already registered for this animal, farm and date")

// Weighing is a single weight measurement for an animal.
type Weighing struct {
	ID              uuid.UUID `json:"id"`
	AnimalID        uuid.UUID `json:"animal_id"`
	WeighingDate    time.Time `json:"weighing_date"`
	WeightKg        float64   `json:"weight_kg"`
	Notes           string    `json:"notes,omitempty"`
	CreatedByUserID uuid.UUID `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransactionType classifies an animal movement or ownership change.
type TransactionType string

const (
	TxPurchase TransactionType = "Compra"
	TxSale     TransactionType = "Venta"
	TxTransfer TransactionType = "Traslado"
	TxBirth    TransactionType = "Nacimiento"
	TxDeath    TransactionType = "Muerte"
	TxTheft    TransactionType = "Robo"
	TxLoss     TransactionType = "Perdida"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxPurchase, TxSale, TxTransfer, TxBirth, TxDeath, TxTheft, TxLoss:
		return true
	}
	return false
}

// Transaction is the traceability record of an animal changing hands or farms.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	Type            TransactionType `json:"transaction_type"`
	TransactionDate time.Time       `json:"transaction_date"`
	AnimalID        uuid.UUID       `json:"animal_id"`
	FromFarmID      *uuid.UUID      `json:"from_farm_id,omitempty"`
	ToFarmID        *uuid.UUID      `json:"to_farm_id,omitempty"`
	FromOwnerUserID uuid.UUID       `json:"from_owner_user_id"`
	ToOwnerUserID   *uuid.UUID      `json:"to_owner_user_id,omitempty"`
	PriceValue      *float64        `json:"price_value,omitempty"`
	Reason          string          `json:"reason_for_movement,omitempty"`
	TransportInfo   string          `json:"transport_info,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LocationEntry records an animal's stay at a farm. The (animal, farm,
// entry_date) triple is unique.
type LocationEntry struct {
	ID              uuid.UUID  `json:"id"`
	AnimalID        uuid.UUID  `json:"animal_id"`
	FarmID          uuid.UUID  `json:"farm_id"`
	EntryDate       time.Time  `json:"entry_date"`
	ExitDate        *time.Time `json:"exit_date,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedByUserID uuid.UUID  `json:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
}

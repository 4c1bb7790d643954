package domain

import (
	"time"

	"github.com/google/uuid"
)

// HealthEventType classifies a health intervention. Vaccination and pest
// control (deworming) are event types, not separate record tables.
type HealthEventType string

const (
	HealthVaccination HealthEventType = "Vacunacion"
	HealthDeworming   HealthEventType = "Desparacitacion"
	HealthCheckup     HealthEventType = "Revision_Medica"
	HealthTreatment   HealthEventType = "Tratamiento_Enfermedad"
	HealthSurgery     HealthEventType = "Cirugia"
	HealthDeath       HealthEventType = "Muerte"
	HealthOther       HealthEventType = "Otro"
)

func (t HealthEventType) Valid() bool {
	switch t {
	case HealthVaccination, HealthDeworming, HealthCheckup, HealthTreatment, HealthSurgery, HealthDeath, HealthOther:
		return true
	}
	return false
}

// HealthEvent is a health intervention applied to one or more animals.
// AnimalIDs is materialized from the animal_health_event_pivot join table.
type HealthEvent struct {
	ID                   uuid.UUID       `json:"id"`
	EventType            HealthEventType `json:"event_type"`
	EventDate            time.Time       `json:"event_date"`
	ProductID            *uuid.UUID      `json:"product_id,omitempty"`
	Dosage               string          `json:"dosage,omitempty"`
	AdministeredByUserID uuid.UUID       `json:"administered_by_user_id"`
	Diagnosis            string          `json:"diagnosis,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	AnimalIDs            []uuid.UUID     `json:"animal_ids"`
	CreatedAt            time.Time       `json:"created_at"`
}

// Feeding is a feed ration given to one or more animals.
// AnimalIDs is materialized from the animal_feeding_pivot join table.
type Feeding struct {
	ID                   uuid.UUID   `json:"id"`
	FeedingDate          time.Time   `json:"feeding_date"`
	FeedTypeID           uuid.UUID   `json:"feed_type_id"`
	QuantityKg           float64     `json:"quantity_kg"`
	SupplementID         *uuid.UUID  `json:"supplement_id,omitempty"`
	AdministeredByUserID uuid.UUID   `json:"administered_by_user_id"`
	Notes                string      `json:"notes,omitempty"`
	AnimalIDs            []uuid.UUID `json:"animal_ids"`
	CreatedAt            time.Time   `json:"created_at"`
}

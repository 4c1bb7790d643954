package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReproductiveEventType classifies a reproduction-cycle event.
type ReproductiveEventType string

const (
	ReproMating             ReproductiveEventType = "Monta"
	ReproInsemination       ReproductiveEventType = "Inseminacion_Artificial"
	ReproGestationDiagnosis ReproductiveEventType = "Diagnostico_Gestacion"
	ReproBirth              ReproductiveEventType = "Parto"
	ReproAbortion           ReproductiveEventType = "Aborto"
	ReproWeaning            ReproductiveEventType = "Destete"
	ReproEvaluation         ReproductiveEventType = "Evaluacion_Reproductiva"
)

func (t ReproductiveEventType) Valid() bool {
	switch t {
	case ReproMating, ReproInsemination, ReproGestationDiagnosis, ReproBirth, ReproAbortion, ReproWeaning, ReproEvaluation:
		return true
	}
	return false
}

// GestationResult is the outcome of a gestation diagnosis.
type GestationResult string

const (
	GestationPregnant      GestationResult = "Preñada"
	GestationEmpty         GestationResult = "Vacia"
	GestationNotApplicable GestationResult = "No Aplica"
)

func (r GestationResult) Valid() bool {
	switch r {
	case GestationPregnant, GestationEmpty, GestationNotApplicable:
		return true
	}
	return false
}

var ErrOffspringExists = errors.New("offspring already registered for this event")

// ReproductiveEvent tracks the reproduction cycle of a female animal.
// SireAnimalID optionally references the male involved.
type ReproductiveEvent struct {
	ID                   uuid.UUID             `json:"id"`
	AnimalID             uuid.UUID             `json:"animal_id"`
	EventType            ReproductiveEventType `json:"event_type"`
	EventDate            time.Time             `json:"event_date"`
	SireAnimalID         *uuid.UUID            `json:"sire_animal_id,omitempty"`
	GestationResult      *GestationResult      `json:"gestation_diagnosis_result,omitempty"`
	ExpectedDeliveryDate *time.Time            `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time            `json:"actual_delivery_date,omitempty"`
	NumberOfOffspring    *int                  `json:"number_of_offspring,omitempty"`
	Notes                string                `json:"notes,omitempty"`
	CreatedByUserID      uuid.UUID             `json:"created_by_user_id"`
	CreatedAt            time.Time             `json:"created_at"`
}

// OffspringBorn links a birth event to the animal record created for the
// newborn. The (event, offspring) pair is unique.
type OffspringBorn struct {
	ID                  uuid.UUID `json:"id"`
	ReproductiveEventID uuid.UUID `json:"reproductive_event_id"`
	OffspringAnimalID   uuid.UUID `json:"offspring_animal_id"`
	CreatedAt           time.Time `json:"created_at"`
}

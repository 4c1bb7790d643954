package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sex of an animal. Values match the database enum.
type Sex string

const (
	SexMale      Sex = "Macho"
	SexFemale    Sex = "Hembra"
	SexCastrated Sex = "Castrado"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexCastrated:
		return true
	}
	return false
}

// AnimalStatus is the current lifecycle state of an animal.
type AnimalStatus string

const (
	AnimalActive      AnimalStatus = "Activo"
	AnimalSold        AnimalStatus = "Vendido"
	AnimalDead        AnimalStatus = "Muerto"
	AnimalInTreatment AnimalStatus = "En Tratamiento"
	AnimalQuarantined AnimalStatus = "Cuarentena"
	AnimalRetired     AnimalStatus = "Reformado"
)

func (s AnimalStatus) Valid() bool {
	switch s {
	case AnimalActive, AnimalSold, AnimalDead, AnimalInTreatment, AnimalQuarantined, AnimalRetired:
		return true
	}
	return false
}

// AnimalOrigin records how the animal entered the herd.
type AnimalOrigin string

const (
	OriginBornOnFarm  AnimalOrigin = "Nacido en Finca"
	OriginPurchased   AnimalOrigin = "Comprado"
	OriginTransferred AnimalOrigin = "Transferido"
)

func (o AnimalOrigin) Valid() bool {
	switch o {
	case OriginBornOnFarm, OriginPurchased, OriginTransferred:
		return true
	}
	return false
}

var ErrAnimalNotFound = errors.New("animal not found")
var ErrTagExists = errors.New("tag id already registered")
var ErrInvalidAnimal = errors.New("invalid animal data")

// Animal is the core aggregate: a single head of livestock owned by a user.
// Species and breed reference master data rows; mother and father are
// self-references to other animals.
type Animal struct {
	ID            uuid.UUID    `json:"id"`
	TagID         string       `json:"tag_id"`
	Name          string       `json:"name,omitempty"`
	SpeciesID     *uuid.UUID   `json:"species_id,omitempty"`
	BreedID       *uuid.UUID   `json:"breed_id,omitempty"`
	Sex           Sex          `json:"sex"`
	DateOfBirth   *time.Time   `json:"date_of_birth,omitempty"`
	CurrentStatus AnimalStatus `json:"current_status"`
	Origin        AnimalOrigin `json:"origin"`
	OwnerUserID   uuid.UUID    `json:"owner_user_id"`
	MotherID      *uuid.UUID   `json:"mother_animal_id,omitempty"`
	FatherID      *uuid.UUID   `json:"father_animal_id,omitempty"`
	Description   string       `json:"description,omitempty"`
	PhotoURL      string       `json:"photo_url,omitempty"`
	CurrentLotID  *uuid.UUID   `json:"current_lot_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

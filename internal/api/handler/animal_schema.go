package handler

import (
	"time"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// --- Request / Response types ---

type createAnimalRequest struct {
	TagID         string     `json:"tag_id"         validate:"required"`
	Name          string     `json:"name"`
	SpeciesID     *string    `json:"species_id"     validate:"omitempty,uuid"`
	BreedID       *string    `json:"breed_id"       validate:"omitempty,uuid"`
	Sex           string     `json:"sex"            validate:"required"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	CurrentStatus string     `json:"current_status"`
	Origin        string     `json:"origin"         validate:"required"`
	MotherID      *string    `json:"mother_animal_id" validate:"omitempty,uuid"`
	FatherID      *string    `json:"father_animal_id" validate:"omitempty,uuid"`
	Description   string     `json:"description"`
	PhotoURL      string     `json:"photo_url"`
	CurrentLotID  *string    `json:"current_lot_id" validate:"omitempty,uuid"`
}

type updateAnimalRequest struct {
	Name          *string    `json:"name"`
	SpeciesID     *string    `json:"species_id"     validate:"omitempty,uuid"`
	BreedID       *string    `json:"breed_id"       validate:"omitempty,uuid"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	CurrentStatus *string    `json:"current_status"`
	Description   *string    `json:"description"`
	PhotoURL      *string    `json:"photo_url"`
	CurrentLotID  *string    `json:"current_lot_id" validate:"omitempty,uuid"`
}

type listAnimalsResponse struct {
	Data       []*domain.Animal   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

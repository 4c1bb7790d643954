package handler

import (
	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// --- Request → Service input ---

func toCreateAnimalInput(req createAnimalRequest) (ports.CreateAnimalInput, error) {
	in := ports.CreateAnimalInput{
		TagID:         req.TagID,
		Name:          req.Name,
		Sex:           domain.Sex(req.Sex),
		DateOfBirth:   req.DateOfBirth,
		CurrentStatus: domain.AnimalStatus(req.CurrentStatus),
		Origin:        domain.AnimalOrigin(req.Origin),
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
	}
	if in.CurrentStatus == "" {
		in.CurrentStatus = domain.AnimalActive
	}

	var err error
	if in.SpeciesID, err = parseOptionalUUID(req.SpeciesID); err != nil {
		return in, err
	}
	if in.BreedID, err = parseOptionalUUID(req.BreedID); err != nil {
		return in, err
	}
	if in.MotherID, err = parseOptionalUUID(req.MotherID); err != nil {
		return in, err
	}
	if in.FatherID, err = parseOptionalUUID(req.FatherID); err != nil {
		return in, err
	}
	if in.CurrentLotID, err = parseOptionalUUID(req.CurrentLotID); err != nil {
		return in, err
	}
	return in, nil
}

func toUpdateAnimalInput(req updateAnimalRequest) (ports.UpdateAnimalInput, error) {
	in := ports.UpdateAnimalInput{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	}
	if req.CurrentStatus != nil {
		status := domain.AnimalStatus(*req.CurrentStatus)
		in.CurrentStatus = &status
	}

	var err error
	if in.SpeciesID, err = parseOptionalUUID(req.SpeciesID); err != nil {
		return in, err
	}
	if in.BreedID, err = parseOptionalUUID(req.BreedID); err != nil {
		return in, err
	}
	if in.CurrentLotID, err = parseOptionalUUID(req.CurrentLotID); err != nil {
		return in, err
	}
	return in, nil
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

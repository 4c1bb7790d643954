package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// ReproductionHandler handles reproductive events and offspring links.
type ReproductionHandler struct {
	service ports.ReproductionService
}

func NewReproductionHandler(service ports.ReproductionService) *ReproductionHandler {
	return &ReproductionHandler{service: service}
}

type createReproductiveEventRequest struct {
	AnimalID             string     `json:"animal_id"      validate:"required,uuid"`
	EventType            string     `json:"event_type"     validate:"required"`
	EventDate            time.Time  `json:"event_date"     validate:"required"`
	SireAnimalID         *string    `json:"sire_animal_id" validate:"omitempty,uuid"`
	GestationResult      *string    `json:"gestation_diagnosis_result"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date"`
	NumberOfOffspring    *int       `json:"number_of_offspring"`
	Notes                string     `json:"notes"`
}

type addOffspringRequest struct {
	OffspringAnimalID string `json:"offspring_animal_id" validate:"required,uuid"`
}

// CreateEvent records a reproduction-cycle event for a female animal.
//
// @Summary      Create reproductive event
// @Tags         reproductive-events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createReproductiveEventRequest  true  "Event details"
// @Success      201   {object}  domain.ReproductiveEvent
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/reproductive-events [post]
func (h *ReproductionHandler) CreateEvent(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createReproductiveEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.ReproductiveEventInput{
		EventType:            domain.ReproductiveEventType(req.EventType),
		EventDate:            req.EventDate,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		ActualDeliveryDate:   req.ActualDeliveryDate,
		NumberOfOffspring:    req.NumberOfOffspring,
		Notes:                req.Notes,
	}
	animalID, err := parseOptionalUUID(&req.AnimalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid animal_id")
	}
	in.AnimalID = *animalID
	if in.SireAnimalID, err = parseOptionalUUID(req.SireAnimalID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sire_animal_id")
	}
	if req.GestationResult != nil {
		result := domain.GestationResult(*req.GestationResult)
		in.GestationResult = &result
	}

	e, err := h.service.CreateEvent(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// GetEvent returns one reproductive event.
//
// @Summary      Get reproductive event
// @Tags         reproductive-events
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.ReproductiveEvent
// @Failure      404  {object}  errorResponse
// @Router       /api/reproductive-events/{id} [get]
func (h *ReproductionHandler) GetEvent(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	e, err := h.service.GetEvent(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// ListEvents returns the reproductive history of an animal.
//
// @Summary      List reproductive events
// @Tags         reproductive-events
// @Security     BearerAuth
// @Produce      json
// @Param        animal_id  query    string  true  "Animal ID"
// @Success      200        {array}  domain.ReproductiveEvent
// @Router       /api/reproductive-events [get]
func (h *ReproductionHandler) ListEvents(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	animalID, err := queryUUID(c, "animal_id")
	if err != nil {
		return err
	}

	events, err := h.service.ListEvents(c.Request().Context(), actor, animalID)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.ReproductiveEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

// DeleteEvent removes a reproductive event.
//
// @Summary      Delete reproductive event
// @Tags         reproductive-events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event ID"
// @Success      204  "event deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/reproductive-events/{id} [delete]
func (h *ReproductionHandler) DeleteEvent(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteEvent(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddOffspring links a newborn animal record to a birth event.
//
// @Summary      Add offspring
// @Tags         reproductive-events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Event ID"
// @Param        body  body      addOffspringRequest  true  "Offspring link"
// @Success      201   {object}  domain.OffspringBorn
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/reproductive-events/{id}/offspring [post]
func (h *ReproductionHandler) AddOffspring(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	eventID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req addOffspringRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	offspringID, err := parseOptionalUUID(&req.OffspringAnimalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid offspring_animal_id")
	}

	o, err := h.service.AddOffspring(c.Request().Context(), actor, eventID, *offspringID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, o)
}

// ListOffspring returns the offspring linked to a birth event.
//
// @Summary      List offspring
// @Tags         reproductive-events
// @Security     BearerAuth
// @Produce      json
// @Param        id   path     string  true  "Event ID"
// @Success      200  {array}  domain.OffspringBorn
// @Failure      404  {object} errorResponse
// @Router       /api/reproductive-events/{id}/offspring [get]
func (h *ReproductionHandler) ListOffspring(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	eventID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	offspring, err := h.service.ListOffspring(c.Request().Context(), actor, eventID)
	if err != nil {
		return err
	}
	if offspring == nil {
		offspring = []*domain.OffspringBorn{}
	}
	return c.JSON(http.StatusOK, offspring)
}

package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// EventHandler handles the multi-animal record endpoints: health events and
// feedings.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

type createHealthEventRequest struct {
	EventType string    `json:"event_type" validate:"required"`
	EventDate time.Time `json:"event_date" validate:"required"`
	ProductID *string   `json:"product_id" validate:"omitempty,uuid"`
	Dosage    string    `json:"dosage"`
	Diagnosis string    `json:"diagnosis"`
	Notes     string    `json:"notes"`
	AnimalIDs []string  `json:"animal_ids" validate:"required,min=1,dive,uuid"`
}

type createFeedingRequest struct {
	FeedingDate  time.Time `json:"feeding_date"  validate:"required"`
	FeedTypeID   string    `json:"feed_type_id"  validate:"required,uuid"`
	QuantityKg   float64   `json:"quantity_kg"   validate:"required,gt=0"`
	SupplementID *string   `json:"supplement_id" validate:"omitempty,uuid"`
	Notes        string    `json:"notes"`
	AnimalIDs    []string  `json:"animal_ids"    validate:"required,min=1,dive,uuid"`
}

// CreateHealthEvent records a health intervention for one or more animals.
//
// @Summary      Create health event
// @Tags         health-events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createHealthEventRequest  true  "Health event details"
// @Success      201   {object}  domain.HealthEvent
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/health-events [post]
func (h *EventHandler) CreateHealthEvent(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createHealthEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	animalIDs, err := parseUUIDs(req.AnimalIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid animal_ids")
	}
	productID, err := parseOptionalUUID(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	e, err := h.service.CreateHealthEvent(c.Request().Context(), actor, ports.HealthEventInput{
		EventType: domain.HealthEventType(req.EventType),
		EventDate: req.EventDate,
		ProductID: productID,
		Dosage:    req.Dosage,
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
		AnimalIDs: animalIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// GetHealthEvent returns one health event with its animals.
//
// @Summary      Get health event
// @Tags         health-events
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Health event ID"
// @Success      200  {object}  domain.HealthEvent
// @Failure      404  {object}  errorResponse
// @Router       /api/health-events/{id} [get]
func (h *EventHandler) GetHealthEvent(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	e, err := h.service.GetHealthEvent(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// ListHealthEvents returns the health events of an animal.
//
// @Summary      List health events
// @Tags         health-events
// @Security     BearerAuth
// @Produce      json
// @Param        animal_id  query    string  true  "Animal ID"
// @Success      200        {array}  domain.HealthEvent
// @Router       /api/health-events [get]
func (h *EventHandler) ListHealthEvents(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	animalID, err := queryUUID(c, "animal_id")
	if err != nil {
		return err
	}

	events, err := h.service.ListHealthEvents(c.Request().Context(), actor, animalID)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.HealthEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

// DeleteHealthEvent removes a health event and its pivots.
//
// @Summary      Delete health event
// @Tags         health-events
// @Security     BearerAuth
// @Param        id  path  string  true  "Health event ID"
// @Success      204  "health event deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/health-events/{id} [delete]
func (h *EventHandler) DeleteHealthEvent(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteHealthEvent(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateFeeding records a feed ration for one or more animals.
//
// @Summary      Create feeding
// @Tags         feedings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createFeedingRequest  true  "Feeding details"
// @Success      201   {object}  domain.Feeding
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/feedings [post]
func (h *EventHandler) CreateFeeding(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createFeedingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	animalIDs, err := parseUUIDs(req.AnimalIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid animal_ids")
	}
	feedTypeID, err := parseOptionalUUID(&req.FeedTypeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid feed_type_id")
	}
	supplementID, err := parseOptionalUUID(req.SupplementID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid supplement_id")
	}

	f, err := h.service.CreateFeeding(c.Request().Context(), actor, ports.FeedingInput{
		FeedingDate:  req.FeedingDate,
		FeedTypeID:   *feedTypeID,
		QuantityKg:   req.QuantityKg,
		SupplementID: supplementID,
		Notes:        req.Notes,
		AnimalIDs:    animalIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, f)
}

// GetFeeding returns one feeding with its animals.
//
// @Summary      Get feeding
// @Tags         feedings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Feeding ID"
// @Success      200  {object}  domain.Feeding
// @Failure      404  {object}  errorResponse
// @Router       /api/feedings/{id} [get]
func (h *EventHandler) GetFeeding(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	f, err := h.service.GetFeeding(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// ListFeedings returns the feedings of an animal.
//
// @Summary      List feedings
// @Tags         feedings
// @Security     BearerAuth
// @Produce      json
// @Param        animal_id  query    string  true  "Animal ID"
// @Success      200        {array}  domain.Feeding
// @Router       /api/feedings [get]
func (h *EventHandler) ListFeedings(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	animalID, err := queryUUID(c, "animal_id")
	if err != nil {
		return err
	}

	feedings, err := h.service.ListFeedings(c.Request().Context(), actor, animalID)
	if err != nil {
		return err
	}
	if feedings == nil {
		feedings = []*domain.Feeding{}
	}
	return c.JSON(http.StatusOK, feedings)
}

// DeleteFeeding removes a feeding and its pivots.
//
// @Summary      Delete feeding
// @Tags         feedings
// @Security     BearerAuth
// @Param        id  path  string  true  "Feeding ID"
// @Success      204  "feeding deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/feedings/{id} [delete]
func (h *EventHandler) DeleteFeeding(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteFeeding(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

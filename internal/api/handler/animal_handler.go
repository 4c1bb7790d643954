package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// AnimalHandler handles herd endpoints.
type AnimalHandler struct {
	service ports.AnimalService
}

func NewAnimalHandler(service ports.AnimalService) *AnimalHandler {
	return &AnimalHandler{service: service}
}

// Create registers a new animal owned by the caller.
//
// @Summary      Register animal
// @Tags         animals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createAnimalRequest  true  "Animal details"
// @Success      201   {object}  domain.Animal
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/animals [post]
func (h *AnimalHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createAnimalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := toCreateAnimalInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reference id")
	}

	animal, err := h.service.CreateAnimal(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, animal)
}

// List returns a paginated view of the caller's herd.
//
// @Summary      List animals
// @Tags         animals
// @Security     BearerAuth
// @Produce      json
// @Param        status      query     string  false  "Filter by current status"
// @Param        species_id  query     string  false  "Filter by species"
// @Param        lot_id      query     string  false  "Filter by current lot"
// @Param        search      query     string  false  "Partial match on tag or name"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Success      200         {object}  listAnimalsResponse
// @Router       /api/animals [get]
func (h *AnimalHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	filter := ports.ListAnimalsFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if raw := c.QueryParam("species_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid species_id")
		}
		filter.SpeciesID = &id
	}
	if raw := c.QueryParam("lot_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid lot_id")
		}
		filter.LotID = &id
	}

	result, err := h.service.ListAnimals(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	data := result.Items
	if data == nil {
		data = []*domain.Animal{}
	}
	return c.JSON(http.StatusOK, listAnimalsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get returns one animal by ID.
//
// @Summary      Get animal
// @Tags         animals
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Animal ID"
// @Success      200  {object}  domain.Animal
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/animals/{id} [get]
func (h *AnimalHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	animal, err := h.service.GetAnimal(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animal)
}

// Update applies a partial update to an animal.
//
// @Summary      Update animal
// @Tags         animals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Animal ID"
// @Param        body  body      updateAnimalRequest  true  "Fields to update"
// @Success      200   {object}  domain.Animal
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/animals/{id} [put]
func (h *AnimalHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateAnimalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := toUpdateAnimalInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reference id")
	}

	animal, err := h.service.UpdateAnimal(c.Request().Context(), actor, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animal)
}

// Delete removes an animal and its dependent records.
//
// @Summary      Delete animal
// @Tags         animals
// @Security     BearerAuth
// @Param        id  path  string  true  "Animal ID"
// @Success      204  "animal deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/animals/{id} [delete]
func (h *AnimalHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteAnimal(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

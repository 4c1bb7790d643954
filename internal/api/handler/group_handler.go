package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// GroupHandler handles lote endpoints and their memberships.
type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type groupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	PurposeID   *string `json:"purpose_id" validate:"omitempty,uuid"`
}

type assignAnimalRequest struct {
	AnimalID     string    `json:"animal_id"     validate:"required,uuid"`
	AssignedDate time.Time `json:"assigned_date" validate:"required"`
	Notes        string    `json:"notes"`
}

type removeAnimalRequest struct {
	RemovedDate time.Time `json:"removed_date" validate:"required"`
}

// Create registers a new group.
//
// @Summary      Create group
// @Tags         groups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      groupRequest  true  "Group details"
// @Success      201   {object}  domain.Group
// @Failure      400   {object}  errorResponse
// @Router       /api/groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	purposeID, err := parseOptionalUUID(req.PurposeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid purpose_id")
	}

	g, err := h.service.CreateGroup(c.Request().Context(), actor, ports.GroupInput{
		Name:        req.Name,
		Description: req.Description,
		PurposeID:   purposeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, g)
}

// List returns the caller's groups.
//
// @Summary      List groups
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Group
// @Router       /api/groups [get]
func (h *GroupHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	groups, err := h.service.ListGroups(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = []*domain.Group{}
	}
	return c.JSON(http.StatusOK, groups)
}

// Get returns one group by ID.
//
// @Summary      Get group
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Group ID"
// @Success      200  {object}  domain.Group
// @Failure      404  {object}  errorResponse
// @Router       /api/groups/{id} [get]
func (h *GroupHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	g, err := h.service.GetGroup(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

// Update replaces a group's fields.
//
// @Summary      Update group
// @Tags         groups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Group ID"
// @Param        body  body      groupRequest  true  "Group details"
// @Success      200   {object}  domain.Group
// @Failure      404   {object}  errorResponse
// @Router       /api/groups/{id} [put]
func (h *GroupHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	purposeID, err := parseOptionalUUID(req.PurposeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid purpose_id")
	}

	g, err := h.service.UpdateGroup(c.Request().Context(), actor, id, ports.GroupInput{
		Name:        req.Name,
		Description: req.Description,
		PurposeID:   purposeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

// Delete removes a group and its memberships.
//
// @Summary      Delete group
// @Tags         groups
// @Security     BearerAuth
// @Param        id  path  string  true  "Group ID"
// @Success      204  "group deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/groups/{id} [delete]
func (h *GroupHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteGroup(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignAnimal adds an animal to the group.
//
// @Summary      Assign animal to group
// @Tags         groups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Group ID"
// @Param        body  body      assignAnimalRequest  true  "Assignment details"
// @Success      201   {object}  domain.GroupAssignment
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/groups/{id}/animals [post]
func (h *GroupHandler) AssignAnimal(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	groupID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req assignAnimalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	animalID, err := parseOptionalUUID(&req.AnimalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid animal_id")
	}

	a, err := h.service.AssignAnimal(c.Request().Context(), actor, groupID, ports.AssignAnimalInput{
		AnimalID:     *animalID,
		AssignedDate: req.AssignedDate,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// RemoveAnimal closes the animal's membership in the group.
//
// @Summary      Remove animal from group
// @Tags         groups
// @Security     BearerAuth
// @Accept       json
// @Param        id        path  string               true  "Group ID"
// @Param        animalID  path  string               true  "Animal ID"
// @Param        body      body  removeAnimalRequest  true  "Removal date"
// @Success      204  "membership closed"
// @Failure      404  {object}  errorResponse
// @Router       /api/groups/{id}/animals/{animalID} [delete]
func (h *GroupHandler) RemoveAnimal(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	groupID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	animalID, err := pathUUID(c, "animalID")
	if err != nil {
		return err
	}

	var req removeAnimalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.RemovedDate.IsZero() {
		req.RemovedDate = time.Now().UTC()
	}

	if err := h.service.RemoveAnimal(c.Request().Context(), actor, groupID, animalID, req.RemovedDate); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAssignments returns the memberships of a group.
//
// @Summary      List group assignments
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path     string  true  "Group ID"
// @Success      200  {array}  domain.GroupAssignment
// @Failure      404  {object} errorResponse
// @Router       /api/groups/{id}/animals [get]
func (h *GroupHandler) ListAssignments(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	groupID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	assignments, err := h.service.ListAssignments(c.Request().Context(), actor, groupID)
	if err != nil {
		return err
	}
	if assignments == nil {
		assignments = []*domain.GroupAssignment{}
	}
	return c.JSON(http.StatusOK, assignments)
}

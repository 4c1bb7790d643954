package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// FarmHandler handles finca, lot and shared-access endpoints.
type FarmHandler struct {
	service ports.FarmService
}

func NewFarmHandler(service ports.FarmService) *FarmHandler {
	return &FarmHandler{service: service}
}

type createFarmRequest struct {
	Name         string   `json:"name" validate:"required"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AreaHectares *float64 `json:"area_hectares"`
	ContactInfo  string   `json:"contact_info"`
}

type updateFarmRequest struct {
	Name         *string  `json:"name"`
	Location     *string  `json:"location"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AreaHectares *float64 `json:"area_hectares"`
	ContactInfo  *string  `json:"contact_info"`
}

type lotRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type grantAccessRequest struct {
	UserID    string     `json:"user_id" validate:"required,uuid"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Create registers a new finca owned by the caller.
//
// @Summary      Create farm
// @Tags         farms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createFarmRequest  true  "Farm details"
// @Success      201   {object}  domain.Farm
// @Failure      400   {object}  errorResponse
// @Router       /api/farms [post]
func (h *FarmHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createFarmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	farm, err := h.service.CreateFarm(c.Request().Context(), actor, ports.CreateFarmInput{
		Name:         req.Name,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		AreaHectares: req.AreaHectares,
		ContactInfo:  req.ContactInfo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, farm)
}

// List returns the caller's farms.
//
// @Summary      List farms
// @Tags         farms
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Farm
// @Router       /api/farms [get]
func (h *FarmHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	farms, err := h.service.ListFarms(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if farms == nil {
		farms = []*domain.Farm{}
	}
	return c.JSON(http.StatusOK, farms)
}

// Get returns one farm by ID.
//
// @Summary      Get farm
// @Tags         farms
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Farm ID"
// @Success      200  {object}  domain.Farm
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/farms/{id} [get]
func (h *FarmHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	farm, err := h.service.GetFarm(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, farm)
}

// Update applies a partial update to a farm.
//
// @Summary      Update farm
// @Tags         farms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Farm ID"
// @Param        body  body      updateFarmRequest  true  "Fields to update"
// @Success      200   {object}  domain.Farm
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/farms/{id} [put]
func (h *FarmHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateFarmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	farm, err := h.service.UpdateFarm(c.Request().Context(), actor, id, ports.UpdateFarmInput{
		Name:         req.Name,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		AreaHectares: req.AreaHectares,
		ContactInfo:  req.ContactInfo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, farm)
}

// Delete removes a farm and all dependent rows.
//
// @Summary      Delete farm
// @Tags         farms
// @Security     BearerAuth
// @Param        id  path  string  true  "Farm ID"
// @Success      204  "farm deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/farms/{id} [delete]
func (h *FarmHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteFarm(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateLot adds a lot (paddock) to a farm.
//
// @Summary      Create lot
// @Tags         farms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        farmID  path      string      true  "Farm ID"
// @Param        body    body      lotRequest  true  "Lot details"
// @Success      201     {object}  domain.Lot
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /api/farms/{farmID}/lots [post]
func (h *FarmHandler) CreateLot(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	farmID, err := pathUUID(c, "farmID")
	if err != nil {
		return err
	}

	var req lotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lot, err := h.service.CreateLot(c.Request().Context(), actor, farmID, ports.LotInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lot)
}

// ListLots returns the lots of a farm.
//
// @Summary      List lots
// @Tags         farms
// @Security     BearerAuth
// @Produce      json
// @Param        farmID  path     string  true  "Farm ID"
// @Success      200     {array}  domain.Lot
// @Failure      404     {object} errorResponse
// @Router       /api/farms/{farmID}/lots [get]
func (h *FarmHandler) ListLots(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	farmID, err := pathUUID(c, "farmID")
	if err != nil {
		return err
	}

	lots, err := h.service.ListLots(c.Request().Context(), actor, farmID)
	if err != nil {
		return err
	}
	if lots == nil {
		lots = []*domain.Lot{}
	}
	return c.JSON(http.StatusOK, lots)
}

// UpdateLot renames or redescribes a lot.
//
// @Summary      Update lot
// @Tags         farms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        farmID  path      string      true  "Farm ID"
// @Param        lotID   path      string      true  "Lot ID"
// @Param        body    body      lotRequest  true  "Lot details"
// @Success      200     {object}  domain.Lot
// @Failure      404     {object}  errorResponse
// @Router       /api/farms/{farmID}/lots/{lotID} [put]
func (h *FarmHandler) UpdateLot(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	farmID, err := pathUUID(c, "farmID")
	if err != nil {
		return err
	}
	lotID, err := pathUUID(c, "lotID")
	if err != nil {
		return err
	}

	var req lotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lot, err := h.service.UpdateLot(c.Request().Context(), actor, farmID, lotID, ports.LotInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lot)
}

// DeleteLot removes a lot.
//
// @Summary      Delete lot
// @Tags         farms
// @Security     BearerAuth
// @Param        farmID  path  string  true  "Farm ID"
// @Param        lotID   path  string  true  "Lot ID"
// @Success      204  "lot deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/farms/{farmID}/lots/{lotID} [delete]
func (h *FarmHandler) DeleteLot(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	farmID, err := pathUUID(c, "farmID")
	if err != nil {
		return err
	}
	lotID, err := pathUUID(c, "lotID")
	if err != nil {
		return err
	}

	if err := h.service.DeleteLot(c.Request().Context(), actor, farmID, lotID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GrantAccess shares a farm with another user. Farm owner only.
//
// @Summary      Grant farm access
// @Tags         farms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Farm ID"
// @Param        body  body      grantAccessRequest  true  "Grant details"
// @Success      201   {object}  domain.FarmAccess
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/farms/{id}/access [post]
func (h *FarmHandler) GrantAccess(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	farmID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req grantAccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID, err := parseOptionalUUID(&req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	a, err := h.service.GrantAccess(c.Request().Context(), actor, farmID, ports.GrantAccessInput{
		UserID:    *userID,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// ListAccess returns the shared-access grants on a farm. Farm owner only.
//
// @Summary      List farm access grants
// @Tags         farms
// @Security     BearerAuth
// @Produce      json
// @Param        id   path     string  true  "Farm ID"
// @Success      200  {array}  domain.FarmAccess
// @Failure      403  {object}  errorResponse
// @Router       /api/farms/{id}/access [get]
func (h *FarmHandler) ListAccess(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	farmID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	grants, err := h.service.ListAccess(c.Request().Context(), actor, farmID)
	if err != nil {
		return err
	}
	if grants == nil {
		grants = []*domain.FarmAccess{}
	}
	return c.JSON(http.StatusOK, grants)
}

// RevokeAccess removes a user's grant on a farm. Farm owner only.
//
// @Summary      Revoke farm access
// @Tags         farms
// @Security     BearerAuth
// @Param        id      path  string  true  "Farm ID"
// @Param        userID  path  string  true  "User ID"
// @Success      204  "access revoked"
// @Failure      404  {object}  errorResponse
// @Router       /api/farms/{id}/access/{userID} [delete]
func (h *FarmHandler) RevokeAccess(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	farmID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userID")
	if err != nil {
		return err
	}

	if err := h.service.RevokeAccess(c.Request().Context(), actor, farmID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

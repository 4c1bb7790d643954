package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// MasterDataHandler handles catalog rows and configuration parameters.
type MasterDataHandler struct {
	service ports.MasterDataService
}

func NewMasterDataHandler(service ports.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{service: service}
}

type masterDataRequest struct {
	Category    string          `json:"category" validate:"required"`
	Name        string          `json:"name"     validate:"required"`
	Description string          `json:"description"`
	Properties  json.RawMessage `json:"properties"`
	IsActive    *bool           `json:"is_active"`
}

type updateMasterDataRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Properties  json.RawMessage `json:"properties"`
	IsActive    *bool           `json:"is_active"`
}

type configParameterRequest struct {
	Name        string `json:"parameter_name"  validate:"required"`
	Value       string `json:"parameter_value" validate:"required"`
	DataType    string `json:"data_type"       validate:"required"`
	Description string `json:"description"`
}

// Create inserts a catalog row. Admin only.
//
// @Summary      Create master data entry
// @Tags         master-data
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      masterDataRequest  true  "Catalog entry"
// @Success      201   {object}  domain.MasterData
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/master-data [post]
func (h *MasterDataHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req masterDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.service.Create(c.Request().Context(), actor, ports.MasterDataInput{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Properties:  req.Properties,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// List returns catalog rows, optionally filtered by category.
//
// @Summary      List master data
// @Tags         master-data
// @Security     BearerAuth
// @Produce      json
// @Param        category  query    string  false  "Category filter"
// @Success      200       {array}  domain.MasterData
// @Router       /api/master-data [get]
func (h *MasterDataHandler) List(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.MasterData{}
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one catalog row by ID.
//
// @Summary      Get master data entry
// @Tags         master-data
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Entry ID"
// @Success      200  {object}  domain.MasterData
// @Failure      404  {object}  errorResponse
// @Router       /api/master-data/{id} [get]
func (h *MasterDataHandler) Get(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Update partially updates a catalog row; absent fields keep their value.
// Admin only.
//
// @Summary      Update master data entry
// @Tags         master-data
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Entry ID"
// @Param        body  body      updateMasterDataRequest  true  "Fields to change"
// @Success      200   {object}  domain.MasterData
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/master-data/{id} [put]
func (h *MasterDataHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateMasterDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	m, err := h.service.Update(c.Request().Context(), actor, id, ports.UpdateMasterDataInput{
		Name:        req.Name,
		Description: req.Description,
		Properties:  req.Properties,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete removes a catalog row. Admin only.
//
// @Summary      Delete master data entry
// @Tags         master-data
// @Security     BearerAuth
// @Param        id  path  string  true  "Entry ID"
// @Success      204  "entry deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/master-data/{id} [delete]
func (h *MasterDataHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetParameter creates or replaces a typed application setting. Admin only.
//
// @Summary      Set config parameter
// @Tags         config-parameters
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      configParameterRequest  true  "Parameter"
// @Success      200   {object}  domain.ConfigParameter
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/config-parameters [put]
func (h *MasterDataHandler) SetParameter(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req configParameterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.SetParameter(c.Request().Context(), actor, ports.ConfigParameterInput{
		Name:        req.Name,
		Value:       req.Value,
		DataType:    domain.ParamDataType(req.DataType),
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// GetParameter returns one setting by name.
//
// @Summary      Get config parameter
// @Tags         config-parameters
// @Security     BearerAuth
// @Produce      json
// @Param        name  path      string  true  "Parameter name"
// @Success      200   {object}  domain.ConfigParameter
// @Failure      404   {object}  errorResponse
// @Router       /api/config-parameters/{name} [get]
func (h *MasterDataHandler) GetParameter(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	p, err := h.service.GetParameter(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ListParameters returns all settings.
//
// @Summary      List config parameters
// @Tags         config-parameters
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.ConfigParameter
// @Router       /api/config-parameters [get]
func (h *MasterDataHandler) ListParameters(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	params, err := h.service.ListParameters(c.Request().Context())
	if err != nil {
		return err
	}
	if params == nil {
		params = []*domain.ConfigParameter{}
	}
	return c.JSON(http.StatusOK, params)
}

// DeleteParameter removes a setting by name. Admin only.
//
// @Summary      Delete config parameter
// @Tags         config-parameters
// @Security     BearerAuth
// @Param        name  path  string  true  "Parameter name"
// @Success      204  "parameter deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/config-parameters/{name} [delete]
func (h *MasterDataHandler) DeleteParameter(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	if err := h.service.DeleteParameter(c.Request().Context(), actor, name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// RecordHandler handles weighings, transactions and location history.
type RecordHandler struct {
	service ports.RecordService
}

func NewRecordHandler(service ports.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

type createWeighingRequest struct {
	AnimalID     string    `json:"animal_id"     validate:"required,uuid"`
	WeighingDate time.Time `json:"weighing_date" validate:"required"`
	WeightKg     float64   `json:"weight_kg"     validate:"required,gt=0"`
	Notes        string    `json:"notes"`
}

type createTransactionRequest struct {
	Type            string    `json:"transaction_type" validate:"required"`
	TransactionDate time.Time `json:"transaction_date" validate:"required"`
	AnimalID        string    `json:"animal_id"        validate:"required,uuid"`
	FromFarmID      *string   `json:"from_farm_id"     validate:"omitempty,uuid"`
	ToFarmID        *string   `json:"to_farm_id"       validate:"omitempty,uuid"`
	ToOwnerUserID   *string   `json:"to_owner_user_id" validate:"omitempty,uuid"`
	PriceValue      *float64  `json:"price_value"`
	Reason          string    `json:"reason_for_movement"`
	TransportInfo   string    `json:"transport_info"`
	Notes           string    `json:"notes"`
}

type createLocationEntryRequest struct {
	AnimalID  string     `json:"animal_id"  validate:"required,uuid"`
	FarmID    string     `json:"farm_id"    validate:"required,uuid"`
	EntryDate time.Time  `json:"entry_date" validate:"required"`
	ExitDate  *time.Time `json:"exit_date"`
	Reason    string     `json:"reason"`
	Notes     string     `json:"notes"`
}

type closeLocationEntryRequest struct {
	ExitDate time.Time `json:"exit_date" validate:"required"`
}

// CreateWeighing records a weight measurement for an animal.
//
// @Summary      Create weighing
// @Tags         records
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createWeighingRequest  true  "Weighing details"
// @Success      201   {object}  domain.Weighing
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/weighings [post]
func (h *RecordHandler) CreateWeighing(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createWeighingRequest
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

	w, err := h.service.CreateWeighing(c.Request().Context(), actor, ports.WeighingInput{
		AnimalID:     *animalID,
		WeighingDate: req.WeighingDate,
		WeightKg:     req.WeightKg,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, w)
}

// GetWeighing returns one weighing by ID.
//
// @Summary      Get weighing
// @Tags         records
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Weighing ID"
// @Success      200  {object}  domain.Weighing
// @Failure      404  {object}  errorResponse
// @Router       /api/weighings/{id} [get]
func (h *RecordHandler) GetWeighing(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	w, err := h.service.GetWeighing(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w)
}

// ListWeighings returns the weight history of an animal.
//
// @Summary      List weighings
// @Tags         records
// @Security     BearerAuth
// @Produce      json
// @Param        animal_id  query    string  true  "Animal ID"
// @Success      200        {array}  domain.Weighing
// @Router       /api/weighings [get]
func (h *RecordHandler) ListWeighings(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	animalID, err := queryUUID(c, "animal_id")
	if err != nil {
		return err
	}

	weighings, err := h.service.ListWeighings(c.Request().Context(), actor, animalID)
	if err != nil {
		return err
	}
	if weighings == nil {
		weighings = []*domain.Weighing{}
	}
	return c.JSON(http.StatusOK, weighings)
}

// DeleteWeighing removes a weighing row.
//
// @Summary      Delete weighing
// @Tags         records
// @Security     BearerAuth
// @Param        id  path  string  true  "Weighing ID"
// @Success      204  "weighing deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/weighings/{id} [delete]
func (h *RecordHandler) DeleteWeighing(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteWeighing(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTransaction records a traceability event for an animal.
//
// @Summary      Create transaction
// @Tags         records
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createTransactionRequest  true  "Transaction details"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/transactions [post]
func (h *RecordHandler) CreateTransaction(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.TransactionInput{
		Type:            domain.TransactionType(req.Type),
		TransactionDate: req.TransactionDate,
		PriceValue:      req.PriceValue,
		Reason:          req.Reason,
		TransportInfo:   req.TransportInfo,
		Notes:           req.Notes,
	}
	animalID, err := parseOptionalUUID(&req.AnimalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid animal_id")
	}
	in.AnimalID = *animalID
	if in.FromFarmID, err = parseOptionalUUID(req.FromFarmID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid from_farm_id")
	}
	if in.ToFarmID, err = parseOptionalUUID(req.ToFarmID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to_farm_id")
	}
	if in.ToOwnerUserID, err = parseOptionalUUID(req.ToOwnerUserID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to_owner_user_id")
	}

	t, err := h.service.CreateTransaction(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// GetTransaction returns one transaction by ID.
//
// @Summary      Get transaction
// @Tags         records
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  domain.Transaction
// @Failure      404  {object}  errorResponse
// @Router       /api/transactions/{id} [get]
func (h *RecordHandler) GetTransaction(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	t, err := h.service.GetTransaction(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// ListTransactions returns the traceability history of an animal.
//
// @Summary      List transactions
// @Tags         records
// @Security     BearerAuth
// @Produce      json
// @Param        animal_id  query    string  true  "Animal ID"
// @Success      200        {array}  domain.Transaction
// @Router       /api/transactions [get]
func (h *RecordHandler) ListTransactions(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	animalID, err := queryUUID(c, "animal_id")
	if err != nil {
		return err
	}

	txs, err := h.service.ListTransactions(c.Request().Context(), actor, animalID)
	if err != nil {
		return err
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}
	return c.JSON(http.StatusOK, txs)
}

// DeleteTransaction removes a transaction row.
//
// @Summary      Delete transaction
// @Tags         records
// @Security     BearerAuth
// @Param        id  path  string  true  "Transaction ID"
// @Success      204  "transaction deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/transactions/{id} [delete]
func (h *RecordHandler) DeleteTransaction(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteTransaction(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateLocationEntry opens a stay of an animal at a farm.
//
// @Summary      Create location entry
// @Tags         records
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createLocationEntryRequest  true  "Location entry details"
// @Success      201   {object}  domain.LocationEntry
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/location-history [post]
func (h *RecordHandler) CreateLocationEntry(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createLocationEntryRequest
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
	farmID, err := parseOptionalUUID(&req.FarmID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid farm_id")
	}

	e, err := h.service.CreateLocationEntry(c.Request().Context(), actor, ports.LocationEntryInput{
		AnimalID:  *animalID,
		FarmID:    *farmID,
		EntryDate: req.EntryDate,
		ExitDate:  req.ExitDate,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// GetLocationEntry returns one stay by ID.
//
// @Summary      Get location entry
// @Tags         records
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Location entry ID"
// @Success      200  {object}  domain.LocationEntry
// @Failure      404  {object}  errorResponse
// @Router       /api/location-history/{id} [get]
func (h *RecordHandler) GetLocationEntry(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	e, err := h.service.GetLocationEntry(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// CloseLocationEntry sets the exit date of an open stay.
//
// @Summary      Close location entry
// @Tags         records
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Location entry ID"
// @Param        body  body      closeLocationEntryRequest  true  "Exit date"
// @Success      200   {object}  domain.LocationEntry
// @Failure      404   {object}  errorResponse
// @Router       /api/location-history/{id}/exit [put]
func (h *RecordHandler) CloseLocationEntry(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req closeLocationEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := h.service.CloseLocationEntry(c.Request().Context(), actor, id, req.ExitDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// DeleteLocationEntry removes a stay row.
//
// @Summary      Delete location entry
// @Tags         records
// @Security     BearerAuth
// @Param        id  path  string  true  "Location entry ID"
// @Success      204  "entry deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/location-history/{id} [delete]
func (h *RecordHandler) DeleteLocationEntry(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteLocationEntry(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLocationHistory returns the stays of an animal.
//
// @Summary      List location history
// @Tags         records
// @Security     BearerAuth
// @Produce      json
// @Param        animal_id  query    string  true  "Animal ID"
// @Success      200        {array}  domain.LocationEntry
// @Router       /api/location-history [get]
func (h *RecordHandler) ListLocationHistory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	animalID, err := queryUUID(c, "animal_id")
	if err != nil {
		return err
	}

	entries, err := h.service.ListLocationHistory(c.Request().Context(), actor, animalID)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.LocationEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// ActivityHandler serves the per-user audit feed.
type ActivityHandler struct {
	repo ports.ActivityRepository
}

func NewActivityHandler(repo ports.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

// List returns the caller's most recent activity entries.
//
// @Summary      List activity
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query    int  false  "Max entries, default 50"
// @Success      200    {array}  domain.ActivityEntry
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	entries, err := h.repo.ListByUser(c.Request().Context(), actor.UserID, limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.ActivityEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

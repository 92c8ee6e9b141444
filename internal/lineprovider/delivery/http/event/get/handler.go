package get

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/internal/lib/api"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

const (
	defaultOffset = 0
	defaultLimit  = 10
)

var (
	errInvalidOffset = errors.New("offset must be a non-negative integer")
	errInvalidLimit  = errors.New("limit must be a positive integer")
)

type eventGetter interface {
	Events(ctx context.Context, offset, limit int) ([]models.Event, error)
}

type Handler struct {
	log logger.Logger

	eventGetter eventGetter
}

func NewHandler(log logger.Logger, eventGetter eventGetter) *Handler {
	return &Handler{
		log:         log,
		eventGetter: eventGetter,
	}
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.event.Events"

	offset, limit, err := parsePagination(r.URL.Query())
	if err != nil {
		h.log.Error(op, "validation error", err.Error())
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.eventGetter.Events(r.Context(), offset, limit)
	if err != nil {
		h.log.Error(op, "error", err.Error())
		api.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err = api.WriteJSON(w, http.StatusOK, events); err != nil {
		h.log.Error(op, "encode error", err.Error())
	}
}

func parsePagination(query url.Values) (offset, limit int, err error) {
	offset, limit = defaultOffset, defaultLimit

	if raw := query.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errInvalidOffset
		}
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, errInvalidLimit
		}
	}

	return offset, limit, nil
}

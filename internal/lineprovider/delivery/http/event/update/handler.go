package update

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/internal/lib/api"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventUpdater interface {
	Update(ctx context.Context, eventID int64, upd models.EventUpdate) (*models.Event, error)
}

type Handler struct {
	log logger.Logger

	eventUpdater eventUpdater
}

func NewHandler(log logger.Logger, eventUpdater eventUpdater) *Handler {
	return &Handler{
		log:          log,
		eventUpdater: eventUpdater,
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.event.Update"

	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || eventID <= 0 {
		api.WriteError(w, http.StatusBadRequest, errInvalidEventID.Error())
		return
	}

	var request UpdateEventRequest

	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.Error(op, "decode error", err.Error())
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = request.validate(); err != nil {
		h.log.Error(op, "validation error", err.Error())
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.eventUpdater.Update(r.Context(), eventID, request.toDTO())
	if err != nil {
		if errors.Is(err, internalErrors.ErrEventNotFound) {
			api.WriteError(w, http.StatusNotFound, "event not found")
			return
		}

		h.log.Error(op, "error", err.Error())
		api.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err = api.WriteJSON(w, http.StatusOK, updated); err != nil {
		h.log.Error(op, "encode error", err.Error())
	}
}

package create

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/internal/lib/api"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventCreator interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
}

type Handler struct {
	log logger.Logger

	eventCreator eventCreator
}

func NewHandler(log logger.Logger, eventCreator eventCreator) *Handler {
	return &Handler{
		log:          log,
		eventCreator: eventCreator,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.event.Create"

	var request CreateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.Error(op, "decode error", err.Error())
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := request.validate(); err != nil {
		h.log.Error(op, "validation error", err.Error())
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := request.toDTO()

	created, err := h.eventCreator.Create(r.Context(), &event)
	if err != nil {
		h.log.Error(op, "error", err.Error())
		api.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err = api.WriteJSON(w, http.StatusCreated, created); err != nil {
		h.log.Error(op, "encode error", err.Error())
	}
}

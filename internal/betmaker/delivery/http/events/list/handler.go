package list

import (
	"context"
	"errors"
	"net/http"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/internal/lib/api"
	"github.com/thistlewind/bet_services_system/pkg/brokers/rabbitmq"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventLister interface {
	AvailableEvents(ctx context.Context) ([]models.Event, error)
}

type Handler struct {
	log logger.Logger

	eventLister eventLister
}

func NewHandler(log logger.Logger, eventLister eventLister) *Handler {
	return &Handler{
		log:         log,
		eventLister: eventLister,
	}
}

func (h *Handler) AvailableEvents(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.events.AvailableEvents"

	events, err := h.eventLister.AvailableEvents(r.Context())
	if err != nil {
		if errors.Is(err, rabbitmq.ErrResponseTimeout) {
			h.log.Error(op, "error", err.Error())
			api.WriteError(w, http.StatusGatewayTimeout, "provider did not respond in time")
			return
		}

		h.log.Error(op, "error", err.Error())
		api.WriteError(w, http.StatusInternalServerError, "error while getting available events has occurred")
		return
	}

	if err = api.WriteJSON(w, http.StatusOK, events); err != nil {
		h.log.Error(op, "encode error", err.Error())
	}
}

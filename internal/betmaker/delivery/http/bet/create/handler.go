package create

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/internal/lib/api"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/brokers/rabbitmq"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type betCreator interface {
	Create(ctx context.Context, bet *models.Bet) (*models.Bet, error)
}

type Handler struct {
	log logger.Logger

	betCreator betCreator
}

func NewHandler(log logger.Logger, betCreator betCreator) *Handler {
	return &Handler{
		log:        log,
		betCreator: betCreator,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.bet.Create"

	var request CreateBetRequest

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

	bet := request.toDTO()

	created, err := h.betCreator.Create(r.Context(), &bet)
	if err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrEventNotFound):
			api.WriteError(w, http.StatusNotFound, "available event not found")
		case errors.Is(err, rabbitmq.ErrResponseTimeout):
			h.log.Error(op, "error", err.Error())
			api.WriteError(w, http.StatusGatewayTimeout, "provider did not respond in time")
		default:
			h.log.Error(op, "error", err.Error())
			api.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	if err = api.WriteJSON(w, http.StatusCreated, created); err != nil {
		h.log.Error(op, "encode error", err.Error())
	}
}

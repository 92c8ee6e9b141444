package get

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/internal/lib/api"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type betGetter interface {
	Bets(ctx context.Context, offset, limit int) ([]models.Bet, error)
	BetByID(ctx context.Context, betID int64) (*models.Bet, error)
}

type Handler struct {
	log logger.Logger

	betGetter betGetter
}

func NewHandler(log logger.Logger, betGetter betGetter) *Handler {
	return &Handler{
		log:       log,
		betGetter: betGetter,
	}
}

func (h *Handler) Bets(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.bet.Bets"

	request, err := parseListRequest(r.URL.Query())
	if err != nil {
		h.log.Error(op, "validation error", err.Error())
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bets, err := h.betGetter.Bets(r.Context(), request.Offset, request.Limit)
	if err != nil {
		h.log.Error(op, "error", err.Error())
		api.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err = api.WriteJSON(w, http.StatusOK, bets); err != nil {
		h.log.Error(op, "encode error", err.Error())
	}
}

func (h *Handler) BetByID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.bet.BetByID"

	betID, err := parseBetID(chi.URLParam(r, "id"))
	if err != nil {
		h.log.Error(op, "validation error", err.Error())
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet, err := h.betGetter.BetByID(r.Context(), betID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrBetNotFound) {
			api.WriteError(w, http.StatusNotFound, internalErrors.ErrBetNotFound.Error())
			return
		}

		h.log.Error(op, "error", err.Error())
		api.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err = api.WriteJSON(w, http.StatusOK, bet); err != nil {
		h.log.Error(op, "encode error", err.Error())
	}
}

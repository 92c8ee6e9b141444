package betmaker_http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	betCreate "github.com/thistlewind/bet_services_system/internal/betmaker/delivery/http/bet/create"
	betGet "github.com/thistlewind/bet_services_system/internal/betmaker/delivery/http/bet/get"
	eventsList "github.com/thistlewind/bet_services_system/internal/betmaker/delivery/http/events/list"
	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type BetCreator interface {
	Create(ctx context.Context, bet *models.Bet) (*models.Bet, error)
}

type BetGetter interface {
	Bets(ctx context.Context, offset, limit int) ([]models.Bet, error)
	BetByID(ctx context.Context, betID int64) (*models.Bet, error)
}

type EventLister interface {
	AvailableEvents(ctx context.Context) ([]models.Event, error)
}

type Handler struct {
	log logger.Logger

	createHandler *betCreate.Handler
	getHandler    *betGet.Handler
	eventsHandler *eventsList.Handler
}

func NewHandler(
	log logger.Logger,
	betCreator BetCreator,
	betGetter BetGetter,
	eventLister EventLister,
) *Handler {
	return &Handler{
		log:           log,
		createHandler: betCreate.NewHandler(log, betCreator),
		getHandler:    betGet.NewHandler(log, betGetter),
		eventsHandler: eventsList.NewHandler(log, eventLister),
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/bets", func(r chi.Router) {
		r.Post("/", h.createHandler.Create)
		r.Get("/", h.getHandler.Bets)
		r.Get("/{id}", h.getHandler.BetByID)
	})

	mux.Get("/events/", h.eventsHandler.AvailableEvents)

	return mux
}

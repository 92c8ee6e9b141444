package lineprovider_http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	eventCreate "github.com/thistlewind/bet_services_system/internal/lineprovider/delivery/http/event/create"
	eventGet "github.com/thistlewind/bet_services_system/internal/lineprovider/delivery/http/event/get"
	eventUpdate "github.com/thistlewind/bet_services_system/internal/lineprovider/delivery/http/event/update"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type EventCreator interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
}

type EventGetter interface {
	Events(ctx context.Context, offset, limit int) ([]models.Event, error)
}

type EventUpdater interface {
	Update(ctx context.Context, eventID int64, upd models.EventUpdate) (*models.Event, error)
}

type Handler struct {
	log logger.Logger

	createHandler *eventCreate.Handler
	getHandler    *eventGet.Handler
	updateHandler *eventUpdate.Handler
}

func NewHandler(
	log logger.Logger,
	eventCreator EventCreator,
	eventGetter EventGetter,
	eventUpdater EventUpdater,
) *Handler {
	return &Handler{
		log:           log,
		createHandler: eventCreate.NewHandler(log, eventCreator),
		getHandler:    eventGet.NewHandler(log, eventGetter),
		updateHandler: eventUpdate.NewHandler(log, eventUpdater),
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/events", func(r chi.Router) {
		r.Post("/", h.createHandler.Create)
		r.Get("/", h.getHandler.Events)
		r.Put("/{id}", h.updateHandler.Update)
	})

	return mux
}

package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/thistlewind/bet_services_system/internal/lineprovider/repository/event"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type Repository struct {
	log logger.Logger

	*event.Repository
}

func NewRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log:        log,
		Repository: event.NewEventRepository(log, db),
	}
}

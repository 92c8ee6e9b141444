package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/thistlewind/bet_services_system/internal/betmaker/repository/bet"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type Repository struct {
	log logger.Logger

	*bet.Repository
}

func NewRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log:        log,
		Repository: bet.NewBetRepository(log, db),
	}
}

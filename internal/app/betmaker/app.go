// Package betmakerapp wires the bet-maker service: HTTP API, correlated
// provider client, response correlator and the status-update listener.
package betmakerapp

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	httpapp "github.com/thistlewind/bet_services_system/internal/app/http"
	"github.com/thistlewind/bet_services_system/internal/betmaker/cache"
	betmakerHTTP "github.com/thistlewind/bet_services_system/internal/betmaker/delivery/http"
	"github.com/thistlewind/bet_services_system/internal/betmaker/listener"
	"github.com/thistlewind/bet_services_system/internal/betmaker/provider"
	"github.com/thistlewind/bet_services_system/internal/betmaker/repository"
	betCreateService "github.com/thistlewind/bet_services_system/internal/betmaker/services/bet/create"
	betGetService "github.com/thistlewind/bet_services_system/internal/betmaker/services/bet/get"
	eventListService "github.com/thistlewind/bet_services_system/internal/betmaker/services/events/list"
	settlementService "github.com/thistlewind/bet_services_system/internal/betmaker/services/settlement"
	"github.com/thistlewind/bet_services_system/internal/config"
	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/brokers/rabbitmq"
	"github.com/thistlewind/bet_services_system/pkg/databases/postgres"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

const betCacheSize = 128

type App struct {
	log logger.Logger
	cfg *config.Config

	httpServer *httpapp.App
	correlator *rabbitmq.Correlator
	listener   *listener.Listener

	db     *postgres.PgDB
	broker *rabbitmq.Connection
	rdb    *redis.Client
}

func NewApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.NewPostgresDB(ctx, log, postgresDSN(&cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	broker, err := rabbitmq.NewConnection(cfg.RabbitMQ.URL, log)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

	publisher := rabbitmq.NewPublisher(broker, cfg.RabbitMQ.Exchange, log)
	consumer := rabbitmq.NewConsumer(broker, cfg.RabbitMQ.Exchange, log)

	correlator := rabbitmq.NewCorrelator(
		rabbitmq.NewConsumer(broker, cfg.RabbitMQ.Exchange, log),
		cfg.RabbitMQ.ResponseQueue,
		cfg.RabbitMQ.ResponseRoutingKey,
		cfg.RabbitMQ.ResponseTimeout,
		log,
	)

	providerClient := provider.NewClient(
		log,
		publisher,
		correlator,
		cfg.RabbitMQ.RequestQueue,
		cfg.RabbitMQ.RequestRoutingKey,
	)

	repo := repository.NewRepository(log, db.GetDB())

	betCache := cache.NewBetCache(
		expirable.NewLRU[int64, *models.Bet](betCacheSize, nil, 10*time.Minute),
		log,
	)
	eventsCache := cache.NewEventsCache(rdb, cfg.Redis.EventsCacheTTL, log)

	betCreationSvc := betCreateService.New(log, betCache, providerClient, repo)
	betRetrievalSvc := betGetService.New(log, betCache, repo)
	eventListingSvc := eventListService.New(log, eventsCache, providerClient)
	settlementSvc := settlementService.New(log, betCache, repo)

	statusListener := listener.New(
		log,
		consumer,
		settlementSvc,
		cfg.RabbitMQ.EventUpdateQueue,
		cfg.RabbitMQ.EventUpdateRoutingKey,
	)

	handler := betmakerHTTP.NewHandler(log, betCreationSvc, betRetrievalSvc, eventListingSvc)

	return &App{
		log:        log,
		cfg:        cfg,
		httpServer: httpapp.NewApp(log, handler.InitRoutes(), cfg.HTTP.Port),
		correlator: correlator,
		listener:   statusListener,
		db:         db,
		broker:     broker,
		rdb:        rdb,
	}, nil
}

// Run starts the HTTP server, the response correlator and the status-update
// listener and blocks until the context is canceled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return a.httpServer.Run()
	})

	group.Go(func() error {
		return a.correlator.Run(groupCtx)
	})

	group.Go(func() error {
		return a.listener.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return a.httpServer.Stop(shutdownCtx)
	})

	return group.Wait()
}

func (a *App) Stop() error {
	if err := a.broker.Close(); err != nil {
		return fmt.Errorf("close rabbitmq: %w", err)
	}

	if err := a.rdb.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}

	return nil
}

func postgresDSN(psqlCfg *config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		psqlCfg.Host, psqlCfg.Port, psqlCfg.User, psqlCfg.DbName, psqlCfg.Pwd, psqlCfg.SslMode)
}

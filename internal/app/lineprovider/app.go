// Package lineproviderapp wires the line-provider service: HTTP API for
// event management, the request worker and the status-change notifier.
package lineproviderapp

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	httpapp "github.com/thistlewind/bet_services_system/internal/app/http"
	"github.com/thistlewind/bet_services_system/internal/config"
	lineproviderHTTP "github.com/thistlewind/bet_services_system/internal/lineprovider/delivery/http"
	"github.com/thistlewind/bet_services_system/internal/lineprovider/notifier"
	"github.com/thistlewind/bet_services_system/internal/lineprovider/repository"
	eventCreateService "github.com/thistlewind/bet_services_system/internal/lineprovider/services/event/create"
	eventGetService "github.com/thistlewind/bet_services_system/internal/lineprovider/services/event/get"
	eventUpdateService "github.com/thistlewind/bet_services_system/internal/lineprovider/services/event/update"
	"github.com/thistlewind/bet_services_system/internal/lineprovider/worker"
	"github.com/thistlewind/bet_services_system/pkg/brokers/rabbitmq"
	"github.com/thistlewind/bet_services_system/pkg/databases/postgres"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type App struct {
	log logger.Logger
	cfg *config.Config

	httpServer    *httpapp.App
	requestWorker *worker.Worker

	db     *postgres.PgDB
	broker *rabbitmq.Connection
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

	publisher := rabbitmq.NewPublisher(broker, cfg.RabbitMQ.Exchange, log)
	consumer := rabbitmq.NewConsumer(broker, cfg.RabbitMQ.Exchange, log)

	repo := repository.NewRepository(log, db.GetDB())

	statusNotifier := notifier.New(
		log,
		publisher,
		cfg.RabbitMQ.EventUpdateQueue,
		cfg.RabbitMQ.EventUpdateRoutingKey,
	)

	eventCreationSvc := eventCreateService.New(log, repo)
	eventRetrievalSvc := eventGetService.New(log, repo)
	eventUpdateSvc := eventUpdateService.New(log, repo, statusNotifier)

	requestWorker := worker.New(
		log,
		consumer,
		publisher,
		repo,
		cfg.RabbitMQ.RequestQueue,
		cfg.RabbitMQ.RequestRoutingKey,
		cfg.RabbitMQ.ResponseQueue,
		cfg.RabbitMQ.ResponseRoutingKey,
	)

	handler := lineproviderHTTP.NewHandler(log, eventCreationSvc, eventRetrievalSvc, eventUpdateSvc)

	return &App{
		log:           log,
		cfg:           cfg,
		httpServer:    httpapp.NewApp(log, handler.InitRoutes(), cfg.HTTP.Port),
		requestWorker: requestWorker,
		db:            db,
		broker:        broker,
	}, nil
}

// Run starts the HTTP server and the request worker and blocks until the
// context is canceled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return a.httpServer.Run()
	})

	group.Go(func() error {
		return a.requestWorker.Run(groupCtx)
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

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}

	return nil
}

func postgresDSN(psqlCfg *config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		psqlCfg.Host, psqlCfg.Port, psqlCfg.User, psqlCfg.DbName, psqlCfg.Pwd, psqlCfg.SslMode)
}

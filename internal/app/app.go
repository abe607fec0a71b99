package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/brewpoint-tech/promo-backend/internal/cfg"
	v1Http "github.com/brewpoint-tech/promo-backend/internal/delivery/v1/http"
	"github.com/brewpoint-tech/promo-backend/internal/infrastructure/kafka"
	"github.com/brewpoint-tech/promo-backend/internal/repository/pgdb"
	pgdbConv "github.com/brewpoint-tech/promo-backend/internal/repository/pgdb/converter/generated"
	"github.com/brewpoint-tech/promo-backend/internal/repository/redis"
	redisConv "github.com/brewpoint-tech/promo-backend/internal/repository/redis/converter/generated"
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
	"github.com/brewpoint-tech/promo-backend/pkg/clients"
	"github.com/brewpoint-tech/promo-backend/pkg/closer"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
	"github.com/brewpoint-tech/promo-backend/pkg/logger"
	"github.com/brewpoint-tech/promo-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App собирает зависимости сервиса промоакций и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	producer     *kafka.Producer
	outboxWorker *kafka.OutboxWorker
	httpSrv      *v1Http.Server
	closer       *closer.Closer

	workerCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	promoConv := pgdbConv.NewPromotionConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

	promotionRepo := pgdb.NewPromotionRepo(db.Pool, promoConv)
	productRepo := pgdb.NewProductRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	promotionUC := usecase.NewPromotionUC(promotionRepo, outboxRepo, db.Pool, log)
	pricingUC := usecase.NewPricingUC(promotionRepo, productRepo, cacheRepo, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(promotionUC, pricingUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:          cfg,
		logger:       log,
		db:           db,
		redisClient:  redisClient,
		producer:     producer,
		outboxWorker: outboxWorker,
		httpSrv:      httpSrv,
		closer:       closer.NewCloser(2 * time.Second),
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера. Ресурсы закрываются в порядке LIFO.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.workerCancel = workerCancel
	a.outboxWorker.Start(workerCtx)

	a.registerClosers()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// registerClosers регистрирует ресурсы в порядке создания; Closer закрывает их в обратном.
func (a *App) registerClosers() {
	a.closer.Add(func(ctx context.Context) error {
		a.db.Close()
		return nil
	})

	a.closer.Add(func(ctx context.Context) error {
		return a.redisClient.Client.Close()
	})

	a.closer.Add(func(ctx context.Context) error {
		return a.producer.Close()
	})

	a.closer.Add(func(ctx context.Context) error {
		a.workerCancel()
		a.outboxWorker.Stop()
		return nil
	})

	a.closer.Add(func(ctx context.Context) error {
		if err := a.httpSrv.Stop(ctx); err != nil {
			return err
		}
		a.logger.Infof("HTTP server stopped")
		return nil
	})
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

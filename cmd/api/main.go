package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/gym-portal/internal/api/http"
	"github.com/spec-kit/gym-portal/internal/api/http/handlers"
	"github.com/spec-kit/gym-portal/internal/auth"
	"github.com/spec-kit/gym-portal/internal/cache"
	"github.com/spec-kit/gym-portal/internal/config"
	"github.com/spec-kit/gym-portal/internal/events"
	"github.com/spec-kit/gym-portal/internal/observability"
	"github.com/spec-kit/gym-portal/internal/persistence"
	"github.com/spec-kit/gym-portal/internal/repository"
	"github.com/spec-kit/gym-portal/internal/repository/memory"
	"github.com/spec-kit/gym-portal/internal/service"
	"github.com/spec-kit/gym-portal/internal/worker"
)

// repositories groups the entity store backends behind one set of interfaces.
type repositories struct {
	users         repository.UserRepository
	courses       repository.CourseRepository
	overrides     repository.AccessOverrideRepository
	plans         repository.PlanRepository
	subscriptions repository.SubscriptionRepository
	products      repository.ProductRepository
	programs      repository.ProgramRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var cacheBackend cache.Cache = cache.Noop{}
	if redis.Client != nil {
		cacheBackend = cache.NewRedisCache(redis.Client)
	}

	repos := buildRepositories(pg, logger)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: repos.users})
	userService := service.NewUserService(repos.users)
	accessService := service.NewAccessService(service.AccessDependencies{
		UserRepo:     repos.users,
		CourseRepo:   repos.courses,
		OverrideRepo: repos.overrides,
		Dispatcher:   dispatcher,
	})
	accountService := service.NewAccountService(service.AccountDependencies{
		UserRepo:         repos.users,
		SubscriptionRepo: repos.subscriptions,
		PlanRepo:         repos.plans,
		Dispatcher:       dispatcher,
		Cache:            cacheBackend,
		KPITTL:           cfg.Cache.KPITTL(),
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CourseRepo:       repos.courses,
		PlanRepo:         repos.plans,
		ProductRepo:      repos.products,
		SubscriptionRepo: repos.subscriptions,
		Dispatcher:       dispatcher,
		Cache:            cacheBackend,
		CatalogTTL:       cfg.Cache.CatalogTTL(),
	})
	programService := service.NewProgramService(service.ProgramDependencies{
		ProgramRepo: repos.programs,
		CourseRepo:  repos.courses,
		UserRepo:    repos.users,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.users)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, authService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Courses:        handlers.NewCoursesHandler(catalogService),
		Plans:          handlers.NewPlansHandler(catalogService),
		Products:       handlers.NewProductsHandler(catalogService),
		Access:         handlers.NewAccessHandler(accessService),
		Programs:       handlers.NewProgramsHandler(programService),
		Dashboard:      handlers.NewDashboardHandler(accessService, accountService, programService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	pool := pg.PoolHandle()
	if pool == nil {
		logger.Info("using in-memory entity store")
		store := memory.NewStore()
		return repositories{
			users:         store.Users(),
			courses:       store.Courses(),
			overrides:     store.AccessOverrides(),
			plans:         store.Plans(),
			subscriptions: store.Subscriptions(),
			products:      store.Products(),
			programs:      store.Programs(),
		}
	}
	return repositories{
		users:         repository.NewUserRepository(pool),
		courses:       repository.NewCourseRepository(pool),
		overrides:     repository.NewAccessOverrideRepository(pool),
		plans:         repository.NewPlanRepository(pool),
		subscriptions: repository.NewSubscriptionRepository(pool),
		products:      repository.NewProductRepository(pool),
		programs:      repository.NewProgramRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

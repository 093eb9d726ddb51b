package main

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"productos/internal/config"
	"productos/internal/database"
	"productos/internal/handlers"
	"productos/internal/middleware"
	"productos/internal/models"
	"productos/internal/repositories"
	"productos/internal/services"
	"productos/pkg/rabbitmq"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Fiber *fiber.App
	cfg   *config.Config
	log   *zerolog.Logger
	db    *gorm.DB
	mq    *rabbitmq.Client
}

type repositorySet struct {
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	users    repositories.UserRepository
}

// NewApp wires repositories, services, handlers and middleware for cfg.
func NewApp(cfg *config.Config, log *zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	repos, err := a.openRepositories()
	if err != nil {
		return nil, err
	}

	// A nil *rabbitmq.Client must not end up inside the interface.
	var events services.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mq = client
		events = client
		if err := client.Consume(a.logEvent); err != nil {
			a.Close()
			return nil, err
		}
	}

	if cfg.Database.Seed {
		if err := seedProducts(context.Background(), repos.products, log); err != nil {
			a.Close()
			return nil, err
		}
	}

	productService := services.NewProductService(repos.products, events, log)
	orderService := services.NewOrderService(repos.orders, events, log)
	authService := services.NewAuthService(repos.users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	app := fiber.New(fiber.Config{
		AppName:      "productos",
		ErrorHandler: handlers.ErrorHandler(log),
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New(recover.Config{EnableStackTrace: true, StackTraceHandler: a.logPanic}))

	app.Get("/health", a.handleHealth)

	var guards []fiber.Handler
	if cfg.Auth.Enabled {
		guards = append(guards, middleware.AuthRequired(authService))
	}

	validator := handlers.NewValidator()
	api := app.Group("/api")
	handlers.NewAuthHandler(authService, validator).RegisterRoutes(api)
	handlers.NewProductHandler(productService, validator).RegisterRoutes(api, guards...)
	handlers.NewOrderHandler(orderService, validator).RegisterRoutes(api, guards...)

	a.Fiber = app
	return a, nil
}

// logPanic records a recovered panic. The stack is omitted in production.
func (a *App) logPanic(c *fiber.Ctx, e interface{}) {
	event := a.log.Error().
		Interface("panic", e).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals(middleware.RequestIDKey))
	if !a.cfg.IsProduction() {
		event = event.Bytes("stack", debug.Stack())
	}
	event.Msg("panic recovered")
}

func (a *App) openRepositories() (repositorySet, error) {
	if a.cfg.Database.Driver == config.DriverMemory {
		products := repositories.NewMemoryProductRepository()
		return repositorySet{
			products: products,
			orders:   repositories.NewMemoryOrderRepository(products),
			users:    repositories.NewMemoryUserRepository(),
		}, nil
	}

	db, err := database.Open(a.cfg.Database, a.log)
	if err != nil {
		return repositorySet{}, err
	}
	a.db = db
	return repositorySet{
		products: repositories.NewGORMProductRepository(db),
		orders:   repositories.NewGORMOrderRepository(db),
		users:    repositories.NewGORMUserRepository(db),
	}, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.StatusOK
	body := fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "memory",
	}
	if a.db != nil {
		body["database"] = "up"
		if err := database.Ping(a.db); err != nil {
			status = fiber.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = "down"
		}
	}
	if a.mq != nil {
		body["events"] = a.mq.Queue()
	}
	return c.Status(status).JSON(body)
}

func (a *App) logEvent(msg amqp.Delivery) error {
	event, err := rabbitmq.DecodeEvent(msg)
	if err != nil {
		return err
	}
	a.log.Info().
		Str("event", event.Type).
		Str("id", event.ID).
		RawJSON("data", event.Data).
		Msg("event received")
	return nil
}

// Close releases the broker connection and the database pool.
func (a *App) Close() {
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			a.log.Error().Err(err).Msg("failed to close RabbitMQ client")
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.log.Error().Err(err).Msg("failed to close database")
		}
	}
}

// seedProducts adds a few demo products when the catalogue is empty.
func seedProducts(ctx context.Context, repo repositories.ProductRepository, log *zerolog.Logger) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Portátil", Description: "Portátil de alto rendimiento", Price: decimal.RequireFromString("1200.00"), Stock: 10, Category: models.CategoryElectronica},
		{Name: "Camiseta", Description: "Camiseta de algodón", Price: decimal.RequireFromString("15.50"), Stock: 40, Category: models.CategoryRopa},
		{Name: "Martillo", Description: "Martillo de carpintero", Price: decimal.RequireFromString("22.90"), Stock: 25, Category: models.CategoryHerramientas},
		{Name: "Balón", Description: "Balón de fútbol", Price: decimal.RequireFromString("30.00"), Stock: 12, Category: models.CategoryDeportes},
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return err
		}
		log.Debug().Uint("id", products[i].ID).Str("name", products[i].Name).Msg("seeded product")
	}
	return nil
}

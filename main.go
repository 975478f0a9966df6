package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"academy/internal/config"
	"academy/internal/database"
	"academy/internal/handlers"
	"academy/internal/middleware"
	"academy/internal/notifications"
	"academy/internal/payments"
	"academy/internal/repositories"
	"academy/internal/services"
	"academy/internal/worker"
	"academy/pkg/rabbitmq"
)

// Deps are the external resources the HTTP app is built on.
type Deps struct {
	DB        *gorm.DB
	Gateway   payments.Gateway
	Notifier  notifications.Sender
	Publisher services.EventPublisher // nil when no broker is configured
	// BrokerStatus reports the broker state for /health. Nil means disabled.
	BrokerStatus func() string
}

// NewApp wires repositories, services and handlers into a Fiber app and
// seeds the admin account.
func NewApp(cfg config.Config, deps Deps) (*fiber.App, error) {
	// --- Repositories ---
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	eventRepo := repositories.NewGORMEventRepository(deps.DB)
	speakerRepo := repositories.NewGORMSpeakerRepository(deps.DB)
	testimonialRepo := repositories.NewGORMTestimonialRepository(deps.DB)
	contactRepo := repositories.NewGORMContactRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)

	// --- Services ---
	pricing := services.Pricing{AmountCents: cfg.PriceCents, Currency: cfg.Currency}
	checkoutService := services.NewCheckoutService(orderRepo, deps.Gateway, deps.Publisher, pricing)
	webhookService := services.NewWebhookService(orderRepo, deps.Gateway, deps.Notifier, deps.Publisher, cfg.AdminNotificationEmail)
	orderService := services.NewOrderService(orderRepo)
	eventService := services.NewEventService(eventRepo)
	speakerService := services.NewSpeakerService(speakerRepo)
	testimonialService := services.NewTestimonialService(testimonialRepo)
	contactService := services.NewContactService(contactRepo, deps.Notifier, cfg.AdminNotificationEmail)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	if err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}

	// --- Handlers ---
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	orderHandler := handlers.NewOrderHandler(orderService)
	eventHandler := handlers.NewEventHandler(eventService)
	speakerHandler := handlers.NewSpeakerHandler(speakerService)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService)
	contactHandler := handlers.NewContactHandler(contactService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		AppName: "academy",
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// --- Payment routes ---
	checkoutHandler.RegisterRoutes(app)
	webhookHandler.RegisterRoutes(app)

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterPriceRoute(apiV1)
	eventHandler.RegisterRoutes(apiV1)
	speakerHandler.RegisterRoutes(apiV1)
	testimonialHandler.RegisterRoutes(apiV1)
	contactHandler.RegisterRoutes(apiV1)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService))
	eventHandler.RegisterAdminRoutes(admin)
	speakerHandler.RegisterAdminRoutes(admin)
	testimonialHandler.RegisterAdminRoutes(admin)
	contactHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterRoutes(admin)
	authHandler.RegisterAdminRoutes(admin)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		broker := "disabled"
		if deps.BrokerStatus != nil {
			broker = deps.BrokerStatus()
		}
		dbStatus := database.Health(c.UserContext(), deps.DB)
		status, code := "healthy", fiber.StatusOK
		if dbStatus != "up" {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"broker":   broker,
		})
	})

	return app, nil
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("%v", err)
	}

	// --- RabbitMQ (optional) ---
	deps := Deps{DB: db}
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events will not be published: %v", err)
			mqClient = nil
		}
	}
	if mqClient != nil {
		defer mqClient.Close()
		deps.Publisher = mqClient
		deps.BrokerStatus = func() string {
			if mqClient.Connected() {
				return "connected"
			}
			return "down"
		}
		if err := mqClient.ConsumeOrderEvents(rabbitmq.AuditLogHandler); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- Payment gateway ---
	if cfg.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set, using the in-process fake gateway")
		deps.Gateway = payments.NewFakeGateway(cfg.StripeWebhookSecret)
	} else {
		deps.Gateway = payments.NewStripeGateway(payments.Config{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
		})
	}

	// --- Notifications ---
	deps.Notifier = notifications.NewDispatcher(cfg.EmailAPIKey, cfg.EmailFrom)

	app, err := NewApp(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	// --- Background workers ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := worker.NewOrphanSweeper(repositories.NewGORMOrderRepository(db), deps.Publisher, cfg.SweeperInterval, cfg.SweeperOrphanAge)
	go sweeper.Run(ctx)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	cancel()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

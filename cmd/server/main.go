package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/cart"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/catalog"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/checkout"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/config"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/handlers"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/messaging"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/middleware"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/monitoring"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/notification"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/notify"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/order"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/payment"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/shipment"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/sitemap"
)

func main() {
	log.Println("🚀 Storefront service starting...")

	cfg := config.Load()

	sentryEnabled := monitoring.Init(cfg.SentryDSN, cfg.Environment, cfg.Release)
	if sentryEnabled {
		defer monitoring.Flush()
	}

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	mongoDB, mongoClose := initMongo(cfg)
	if mongoClose != nil {
		defer mongoClose()
	}

	// RabbitMQ connection
	rabbitConfig := messaging.NewRabbitMQConfig()
	rabbitClient := messaging.NewRabbitMQClient(rabbitConfig)
	var publisher messaging.EventPublisher
	if err := rabbitClient.Connect(); err != nil {
		log.Printf("RabbitMQ unavailable, events disabled: %v", err)
	} else {
		defer rabbitClient.Close()
		publisher = messaging.NewPublisher(rabbitClient)
	}

	// Repositories
	orderRepo := order.NewOrderRepository(db)
	if err := orderRepo.EnsureSchema(); err != nil {
		log.Fatalf("Orders schema error: %v", err)
	}
	notificationRepo := notification.NewNotificationRepository(db)
	if err := notificationRepo.EnsureSchema(); err != nil {
		log.Fatalf("Notifications schema error: %v", err)
	}

	// Services
	notifier := notify.NewLogNotifier()
	cartService := cart.NewService(cart.NewRedisStore(redisClient))
	profileStore := checkout.NewProfileStore(redisClient)
	orderService := order.NewOrderService(orderRepo, publisher)

	gateway, keySecret := selectGateway(cfg)
	paymentService := payment.NewPaymentService(gateway, keySecret, orderService, publisher)

	paymentFlow := checkout.NewHostedPaymentFlow()
	checkoutWorkflow := checkout.NewWorkflow(
		orderService,
		paymentAdapter{paymentService},
		cartService,
		profileStore,
		paymentFlow,
		notifier,
	)

	aggregator := selectAggregator(cfg)
	shipmentManager := shipment.NewManager(
		orderService,
		aggregator,
		publisher,
		notifier,
		cfg.PickupLocationID,
		time.Duration(cfg.CourierFetchDelayMS)*time.Millisecond,
	)

	var catalogService *catalog.CatalogService
	if mongoDB != nil {
		catalogService = catalog.NewCatalogService(catalog.NewCatalogRepository(mongoDB))
	}

	// Handlers
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutWorkflow, profileStore)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, paymentFlow)
	shipmentHandler := handlers.NewShipmentHandler(shipmentManager)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)

	app := setupFiberApp()
	setupRoutes(app, cfg, cartHandler, checkoutHandler, orderHandler, paymentHandler, shipmentHandler, notificationHandler, catalogService)

	// Notification consumer
	if publisher != nil {
		notificationService := notification.NewNotificationService(notificationRepo)
		consumer := messaging.NewConsumer(rabbitClient, "storefront-notifications", "storefront")
		go func() {
			if err := notificationService.StartConsuming(consumer); err != nil {
				log.Printf("RabbitMQ consumption error: %v", err)
			}
		}()
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("🛑 Storefront service closing...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("🌍 Storefront service working: http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server start error: %v", err)
	}
}

// paymentAdapter maps the payment service onto the checkout workflow's
// local interface.
type paymentAdapter struct {
	*payment.PaymentService
}

func (a paymentAdapter) CreatePaymentOrder(ctx context.Context, orderID uuid.UUID) (*checkout.GatewayCheckout, error) {
	created, err := a.PaymentService.CreatePaymentOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &checkout.GatewayCheckout{
		GatewayOrderID: created.GatewayOrderID,
		KeyID:          created.KeyID,
		AmountPaise:    created.AmountPaise,
		Currency:       created.Currency,
	}, nil
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("database open error: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping error: %v", err)
	}

	log.Printf("✅ Database connected: %s", cfg.DBName)
	return db, nil
}

func initMongo(cfg *config.Config) (*mongo.Database, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Printf("MongoDB unavailable, catalog disabled: %v", err)
		return nil, nil
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Printf("MongoDB ping error, catalog disabled: %v", err)
		return nil, nil
	}

	log.Printf("✅ MongoDB connected: %s", cfg.MongoDBName)
	return client.Database(cfg.MongoDBName), func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}
}

func selectGateway(cfg *config.Config) (payment.Gateway, string) {
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		log.Println("Razorpay gateway configured")
		return payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret), cfg.RazorpayKeySecret
	}
	log.Println("No Razorpay keys configured, using mock gateway")
	return payment.NewMockGateway(), ""
}

func selectAggregator(cfg *config.Config) shipment.Aggregator {
	return shipment.NewShiprocketClient(cfg.ShiprocketBaseURL, cfg.ShiprocketEmail, cfg.ShiprocketPassword)
}

func setupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Storefront Service v1.0",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID,X-Session-ID",
	}))

	return app
}

func setupRoutes(
	app *fiber.App,
	cfg *config.Config,
	cartHandler *handlers.CartHandler,
	checkoutHandler *handlers.CheckoutHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	shipmentHandler *handlers.ShipmentHandler,
	notificationHandler *handlers.NotificationHandler,
	catalogService *catalog.CatalogService,
) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "storefront",
		})
	})

	// Cart routes
	carts := api.Group("/cart")
	carts.Get("/", cartHandler.GetCart)
	carts.Post("/items", cartHandler.AddItem)
	carts.Put("/items", cartHandler.UpdateItem)
	carts.Delete("/items", cartHandler.RemoveItem)
	carts.Delete("/", cartHandler.ClearCart)

	// Checkout routes
	api.Post("/orders", checkoutHandler.SubmitOrder)
	api.Get("/checkout/profile", checkoutHandler.GetProfile)
	api.Get("/checkout/states", checkoutHandler.GetStates)

	// Order routes
	orders := api.Group("/orders")
	orders.Get("/track", orderHandler.TrackOrder)
	orders.Get("/:id", orderHandler.GetOrderByID)
	orders.Post("/:id/payment", paymentHandler.CreatePaymentOrder)
	orders.Get("/:id/payment-status", paymentHandler.GetPaymentStatus)
	orders.Get("/:id/payment-status/wait", paymentHandler.AwaitPaymentStatus)

	// Payment callbacks
	payments := api.Group("/payments")
	payments.Post("/verify", paymentHandler.VerifyPayment)
	payments.Post("/cancelled", paymentHandler.PaymentCancelled)
	payments.Post("/failed", paymentHandler.PaymentFailed)

	// Catalog routes
	var catalogHandler *handlers.CatalogHandler
	if catalogService != nil {
		catalogHandler = handlers.NewCatalogHandler(catalogService)
		api.Get("/products", catalogHandler.ListProducts)
		api.Get("/products/:id", catalogHandler.GetProduct)
		api.Get("/collections", catalogHandler.ListCollections)
		api.Get("/collections/:handle", catalogHandler.GetCollection)
		api.Get("/companies", catalogHandler.ListCompanies)
	}

	// Admin routes
	admin := api.Group("/admin", middleware.AdminAuth(cfg.JWTSecret))
	admin.Get("/orders", orderHandler.ListOrders)
	admin.Get("/orders/:id/notifications", notificationHandler.ListByOrder)
	if catalogHandler != nil {
		admin.Put("/collections", catalogHandler.SaveCollection)
		admin.Delete("/collections/:handle", catalogHandler.DeleteCollection)
	}
	admin.Post("/orders/:id/shipment", shipmentHandler.CreateShipment)
	admin.Get("/orders/:id/shipment/couriers", shipmentHandler.GetRecommendedCouriers)
	admin.Post("/orders/:id/shipment/courier", shipmentHandler.AssignCourier)
	admin.Post("/orders/:id/shipment/label", shipmentHandler.GenerateLabel)
	admin.Post("/orders/:id/shipment/pickup", shipmentHandler.RequestPickup)
	admin.Delete("/orders/:id/shipment", shipmentHandler.CancelShipment)

	var sitemapSource sitemap.Catalog
	if catalogService != nil {
		sitemapSource = catalogService
	}
	sitemapGen := sitemap.NewGenerator(cfg.SiteURL, sitemapSource)
	app.Get("/sitemap.xml", func(c *fiber.Ctx) error {
		body, err := sitemapGen.Generate(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sitemap generation failed")
		}
		c.Set("Content-Type", "application/xml")
		return c.Send(body)
	})

	// Route not found
	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error: %v", err)
	monitoring.CaptureError(err)

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

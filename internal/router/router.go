package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/campuswall/backend/internal/handlers"
	"github.com/campuswall/backend/internal/middleware"
	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/notify"
	"github.com/campuswall/backend/internal/ratelimit"
	"github.com/campuswall/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, redisClient *redis.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.AnonymousRateRecord{},
		&models.Broadcast{},
		&models.BroadcastRead{},
		&models.Listing{},
		&models.ItemRequest{},
		&models.LostItem{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database("campuswall")
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	broadcastRepo := repositories.NewPostgresBroadcastRepository(pgdb, redisClient)
	listingRepo := repositories.NewPostgresListingRepository(pgdb)
	requestRepo := repositories.NewPostgresRequestRepository(pgdb)
	lostItemRepo := repositories.NewPostgresLostItemRepository(pgdb)
	anonPostRepo := repositories.NewMongoAnonPostRepository(mongoDB)
	chatRepo := repositories.NewMongoChatRepository(mongoDB)

	// --- Core services ---
	limiter := ratelimit.New(ratelimit.NewGormStore(pgdb))
	fanout := notify.NewFanout(userRepo, requestRepo, notificationRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public routes (anonymous session tracked, no login required) ---
	public := e.Group("/api/v1")
	public.Use(middleware.AnonSessionMiddleware())

	anonPostHandler := handlers.NewAnonPostHandler(anonPostRepo, fanout, limiter)
	anonPostHandler.RegisterFeedRoutes(public)
	log.Println("Anonymous feed routes configured.")

	chatHandler := handlers.NewChatHandler(chatRepo, limiter)
	chatHandler.RegisterChatRoutes(public)
	log.Println("Campus chat routes configured.")

	broadcastHandler := handlers.NewBroadcastHandler(broadcastRepo)
	broadcastHandler.RegisterBroadcastRoutes(public)
	log.Println("Broadcast banner routes configured.")

	listingHandler := handlers.NewListingHandler(listingRepo, notificationRepo, fanout)
	listingHandler.RegisterPublicRoutes(public)

	requestHandler := handlers.NewRequestHandler(requestRepo)
	requestHandler.RegisterPublicRoutes(public)
	log.Println("Public marketplace routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	listingHandler.RegisterListingRoutes(api)
	requestHandler.RegisterRequestRoutes(api)
	log.Println("Marketplace routes configured.")

	lostItemHandler := handlers.NewLostItemHandler(lostItemRepo)
	lostItemHandler.RegisterLostItemRoutes(api)
	log.Println("Lost & found routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// --- Admin routes (require JWT + admin role) ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnly())

	anonPostHandler.RegisterAdminRoutes(admin)
	listingHandler.RegisterAdminRoutes(admin)
	broadcastHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/config"
	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/handlers"
	"github.com/eightstarluxury/transit-backend/internal/middleware"
	"github.com/eightstarluxury/transit-backend/internal/services"
	"github.com/eightstarluxury/transit-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Eight Star Luxury Transit Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	routeRepo := database.NewRouteRepository(db)
	vehicleRepo := database.NewVehicleRepository(db)
	driverRepo := database.NewDriverRepository(db)
	addOnRepo := database.NewAddOnRepository(db)
	tripRepo := database.NewTripRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	adminRepo := database.NewAdminUserRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	paystackService := services.NewPaystackService(cfg.Payment, logger)
	ticketService := services.NewTicketService()
	notificationService := services.NewNotificationService(cfg.Email, ticketService, logger)
	intakeService := services.NewBookingIntakeService(bookingRepo, tripRepo, addOnRepo, paystackService, logger)
	reconciliationService := services.NewReconciliationService(bookingRepo, tripRepo, notificationService, logger)
	searchService := services.NewSearchService(tripRepo, logger)
	adminAuthService := services.NewAdminAuthService(adminRepo, jwtService, logger)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(intakeService, reconciliationService, bookingRepo, logger)
	paymentHandler := handlers.NewPaymentHandler(paystackService, reconciliationService, logger)
	webhookHandler := handlers.NewWebhookHandler(paystackService, reconciliationService, logger)
	tripHandler := handlers.NewTripHandler(tripRepo, searchService, logger)
	routeHandler := handlers.NewRouteHandler(routeRepo, logger)
	vehicleHandler := handlers.NewVehicleHandler(vehicleRepo, logger)
	driverHandler := handlers.NewDriverHandler(driverRepo, logger)
	addOnHandler := handlers.NewAddOnHandler(addOnRepo, logger)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthService, logger)
	dashboardHandler := handlers.NewDashboardHandler(bookingRepo, tripRepo, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public catalogue and search
		v1.GET("/routes/featured", routeHandler.GetFeaturedRoutes)
		v1.GET("/locations/origins", routeHandler.GetOrigins)
		v1.GET("/locations/destinations", routeHandler.GetDestinations)
		v1.GET("/trips/search", tripHandler.SearchTrips)
		v1.GET("/trips/:id", tripHandler.GetTrip)
		v1.GET("/addons", addOnHandler.ListActiveAddOns)

		// Public booking flow
		v1.POST("/bookings", bookingHandler.CreateBooking)
		v1.POST("/bookings/find", bookingHandler.FindBookings)
		v1.GET("/payments/verify/:reference", paymentHandler.VerifyPayment)

		// Provider callbacks
		v1.POST("/webhooks/paystack", webhookHandler.HandlePaystack)

		// Back office
		v1.POST("/admin/login", adminAuthHandler.Login)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(jwtService))
		{
			admin.GET("/dashboard/stats", dashboardHandler.GetStats)

			admin.GET("/bookings", bookingHandler.ListBookings)
			admin.GET("/bookings/:id", bookingHandler.GetBooking)
			admin.PUT("/bookings/:id/status", bookingHandler.UpdateBookingStatus)

			admin.GET("/trips", tripHandler.ListTrips)
			admin.POST("/trips", tripHandler.CreateTrip)
			admin.PUT("/trips/:id", tripHandler.UpdateTrip)
			admin.DELETE("/trips/:id", tripHandler.DeleteTrip)

			admin.GET("/routes", routeHandler.ListRoutes)
			admin.GET("/routes/:id", routeHandler.GetRoute)
			admin.POST("/routes", routeHandler.CreateRoute)
			admin.PUT("/routes/:id", routeHandler.UpdateRoute)
			admin.DELETE("/routes/:id", routeHandler.DeleteRoute)

			admin.GET("/vehicles", vehicleHandler.ListVehicles)
			admin.GET("/vehicles/:id", vehicleHandler.GetVehicle)
			admin.POST("/vehicles", vehicleHandler.CreateVehicle)
			admin.PUT("/vehicles/:id", vehicleHandler.UpdateVehicle)
			admin.DELETE("/vehicles/:id", vehicleHandler.DeleteVehicle)

			admin.GET("/drivers", driverHandler.ListDrivers)
			admin.GET("/drivers/:id", driverHandler.GetDriver)
			admin.POST("/drivers", driverHandler.CreateDriver)
			admin.PUT("/drivers/:id", driverHandler.UpdateDriver)
			admin.DELETE("/drivers/:id", driverHandler.DeleteDriver)

			admin.GET("/addons", addOnHandler.ListAddOns)
			admin.POST("/addons", addOnHandler.CreateAddOn)
			admin.PUT("/addons/:id", addOnHandler.UpdateAddOn)
			admin.DELETE("/addons/:id", addOnHandler.DeleteAddOn)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)
		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tmcosta/barbershop-api/internal/config"
	appointmentHandler "github.com/tmcosta/barbershop-api/internal/handler/appointment"
	authHandler "github.com/tmcosta/barbershop-api/internal/handler/auth"
	barberHandler "github.com/tmcosta/barbershop-api/internal/handler/barber"
	catalogHandler "github.com/tmcosta/barbershop-api/internal/handler/catalog"
	galleryHandler "github.com/tmcosta/barbershop-api/internal/handler/gallery"
	"github.com/tmcosta/barbershop-api/internal/handler/health"
	orderHandler "github.com/tmcosta/barbershop-api/internal/handler/order"
	productHandler "github.com/tmcosta/barbershop-api/internal/handler/product"
	reviewHandler "github.com/tmcosta/barbershop-api/internal/handler/review"
	userHandler "github.com/tmcosta/barbershop-api/internal/handler/user"
	"github.com/tmcosta/barbershop-api/internal/middleware"
	"github.com/tmcosta/barbershop-api/internal/repository/postgres"
	"github.com/tmcosta/barbershop-api/internal/router"
	appointmentService "github.com/tmcosta/barbershop-api/internal/service/appointment"
	authService "github.com/tmcosta/barbershop-api/internal/service/auth"
	barberService "github.com/tmcosta/barbershop-api/internal/service/barber"
	catalogService "github.com/tmcosta/barbershop-api/internal/service/catalog"
	galleryService "github.com/tmcosta/barbershop-api/internal/service/gallery"
	orderService "github.com/tmcosta/barbershop-api/internal/service/order"
	productService "github.com/tmcosta/barbershop-api/internal/service/product"
	reviewService "github.com/tmcosta/barbershop-api/internal/service/review"
	userService "github.com/tmcosta/barbershop-api/internal/service/user"
	"github.com/tmcosta/barbershop-api/pkg/auth"
	"github.com/tmcosta/barbershop-api/pkg/metrics"
	"github.com/tmcosta/barbershop-api/pkg/security"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	barberRepo := postgres.NewBarberRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	galleryRepo := postgres.NewGalleryRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	txManager := postgres.NewTxManager(db)

	// Shared infrastructure
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(0)
	appMetrics := metrics.NewMetrics("barbershop", "api")

	hours := appointmentService.BusinessHours{
		OpeningHour:  cfg.BusinessHours.OpeningHour,
		ClosingHour:  cfg.BusinessHours.ClosingHour,
		SlotInterval: time.Duration(cfg.BusinessHours.SlotIntervalMinutes) * time.Minute,
	}

	// Services
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	userSvc := userService.NewService(userRepo)
	barberSvc := barberService.NewService(barberRepo, userRepo, hasher)
	catalogSvc := catalogService.NewService(serviceRepo)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, barberRepo, serviceRepo, outboxRepo, txManager, hours, appMetrics)
	productSvc := productService.NewService(productRepo)
	orderSvc := orderService.NewService(orderRepo, productRepo, outboxRepo, txManager, appMetrics)
	reviewSvc := reviewService.NewService(reviewRepo, barberRepo)
	gallerySvc := galleryService.NewService(galleryRepo)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	// Router
	routerCfg := router.DefaultConfig()
	routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	routerCfg.RateBurst = cfg.RateLimit.Burst
	routerCfg.Timeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second

	r := router.New(routerCfg,
		health.NewHandler(db, version),
		authHandler.NewHandler(authSvc),
		userHandler.NewHandler(userSvc, authMiddleware),
		barberHandler.NewHandler(barberSvc, reviewSvc, authMiddleware),
		catalogHandler.NewHandler(catalogSvc, authMiddleware),
		appointmentHandler.NewHandler(appointmentSvc, authMiddleware),
		productHandler.NewHandler(productSvc, authMiddleware),
		orderHandler.NewHandler(orderSvc, authMiddleware),
		reviewHandler.NewHandler(reviewSvc, authMiddleware),
		galleryHandler.NewHandler(gallerySvc, authMiddleware),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

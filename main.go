package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/nypass/ticketing-service/config"
	"github.com/nypass/ticketing-service/internal/cache"
	"github.com/nypass/ticketing-service/internal/handler"
	"github.com/nypass/ticketing-service/internal/middleware"
	"github.com/nypass/ticketing-service/internal/repository"
	"github.com/nypass/ticketing-service/internal/service"
	"github.com/nypass/ticketing-service/pkg/database"
	"github.com/nypass/ticketing-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: booking and entry events for dashboards
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	// Redis catalog cache, optional
	var passTypeCache *cache.PassTypeCache
	if cfg.RedisAddr != "" {
		var err error
		passTypeCache, err = cache.NewPassTypeCache(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer passTypeCache.Close()
	} else {
		log.Println("REDIS_ADDR not set, pass type cache disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	passTypeRepo := repository.NewPassTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	entryLogRepo := repository.NewEntryLogRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	passTypeSvc := service.NewPassTypeService(passTypeRepo, passTypeCache)
	bookingSvc := service.NewBookingService(bookingRepo, passTypeRepo, passTypeCache, publisher, cfg.EventYear)
	gateSvc := service.NewGateService(bookingRepo, entryLogRepo, publisher, cfg.EventYear)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketing-service"})
	})

	auth := middleware.JWT(cfg.JWTSecret)

	handler.NewAuthHandler(authSvc).RegisterRoutes(e.Group("/api/v1/auth"), auth)
	handler.NewPassTypeHandler(passTypeSvc).RegisterRoutes(e.Group("/api/v1/pass-types", auth))
	handler.NewBookingHandler(bookingSvc, cfg.EventYear).RegisterRoutes(e, auth)
	handler.NewGateHandler(gateSvc, cfg.AdminPIN, cfg.EventYear).RegisterRoutes(e.Group("/api/v1/gate", auth))

	log.Printf("Ticketing Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

package main

import (
	"booking"
	"booking/internal/api/handler/endpoints"
	"booking/internal/api/models"
	"booking/internal/api/service"
	"booking/internal/realtime"
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	booking.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if booking.GetConfig().Mode == "dev" {
		if err := booking.DB.AutoMigrate(
			&models.User{},
			&models.Agent{},
			&models.Booking{},
			&models.Notification{},
		); err != nil {
			booking.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		booking.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(booking.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Realtime core: connection registry plus the change feed listener.
	registry := realtime.NewRegistry(booking.Logger)
	listener := realtime.NewListener(booking.Nats, registry, booking.Logger)
	go listener.Run(ctx)
	booking.Logger.Info().Msg("Change feed listener started")

	sweep := service.NewSessionSweepService()
	sweep.Start()
	defer sweep.Stop()

	initAPI(router, registry)

	booking.Logger.Debug().Msgf("Starting booking API on port %s", booking.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		booking.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, registry *realtime.Registry) {
	endpoints.AuthHandler(router)
	endpoints.AgentHandler(router)
	endpoints.BookingHandler(router)
	endpoints.WebSocketHandler(router, registry)
}

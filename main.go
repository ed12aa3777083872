package main

import (
	"context"

	"familygather-backend/config"
	"familygather-backend/database"
	"familygather-backend/handlers"
	"familygather-backend/middleware"
	"familygather-backend/pkg/logger"
	"familygather-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	log.Info("Database connected and migrated")

	// Optional collaborators: absence degrades features, never startup.
	cache := database.ConnectRedis(cfg, log)

	var mailer services.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFrom, cfg.AppName)
	} else {
		log.Warn("SENDGRID_API_KEY not set, email notifications disabled")
	}

	var pusher services.Pusher
	if cfg.FirebaseCredPath != "" {
		fcm, err := services.NewFCMPusher(context.Background(), cfg.FirebaseCredPath)
		if err != nil {
			log.WithError(err).Warn("Firebase unavailable, push notifications disabled")
		} else {
			pusher = fcm
		}
	}

	authz := services.NewAuthorizer(db)
	dispatcher := services.NewDispatcher(db, mailer, pusher, log)
	identity := services.NewIdentityService(db)
	familySvc := services.NewFamilyService(db, authz, dispatcher, log)
	eventSvc := services.NewEventService(db, authz, dispatcher, log)
	rsvpSvc := services.NewRsvpService(db, authz, dispatcher, eventSvc)
	commentSvc := services.NewCommentService(db, authz, dispatcher, eventSvc)
	catalogSvc := services.NewCatalogService(db, cache, log)

	if err := catalogSvc.Seed(); err != nil {
		log.WithError(err).Warn("Failed to seed catalog")
	}

	h := handlers.New(cfg, log, identity, familySvc, eventSvc, rsvpSvc, commentSvc, catalogSvc)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Metrics())

	h.Routes(r)

	addr := "0.0.0.0:" + cfg.Port
	log.WithField("addr", addr).Infof("%s server starting", cfg.AppName)
	if err := r.Run(addr); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

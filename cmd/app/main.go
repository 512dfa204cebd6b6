package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/opd-booking/internal/config"
	authHandler "github.com/jwalitptl/opd-booking/internal/handler/auth"
	bookingHandler "github.com/jwalitptl/opd-booking/internal/handler/booking"
	directoryHandler "github.com/jwalitptl/opd-booking/internal/handler/directory"
	hospitalHandler "github.com/jwalitptl/opd-booking/internal/handler/hospital"
	notificationHandler "github.com/jwalitptl/opd-booking/internal/handler/notification"
	pagesHandler "github.com/jwalitptl/opd-booking/internal/handler/pages"
	patientHandler "github.com/jwalitptl/opd-booking/internal/handler/patient"
	"github.com/jwalitptl/opd-booking/internal/navigation"
	"github.com/jwalitptl/opd-booking/internal/repository/localstore"
	"github.com/jwalitptl/opd-booking/internal/router"
	authSvc "github.com/jwalitptl/opd-booking/internal/service/auth"
	bookingSvc "github.com/jwalitptl/opd-booking/internal/service/booking"
	directorySvc "github.com/jwalitptl/opd-booking/internal/service/directory"
	hospitalSvc "github.com/jwalitptl/opd-booking/internal/service/hospital"
	notificationSvc "github.com/jwalitptl/opd-booking/internal/service/notification"
	patientSvc "github.com/jwalitptl/opd-booking/internal/service/patient"
	"github.com/jwalitptl/opd-booking/internal/session"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
	"github.com/jwalitptl/opd-booking/pkg/logger"
	"github.com/jwalitptl/opd-booking/pkg/metrics"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		log.Fatal(err, "failed to create data directory")
	}
	store, err := kvstore.New(filepath.Join(cfg.Storage.DataDir, "store.json"))
	if err != nil {
		log.Fatal(err, "failed to open store")
	}

	patientRepo := localstore.NewPatientRepository(store)
	hospitalRepo := localstore.NewHospitalRepository(store)
	bookingRepo := localstore.NewBookingRepository(store)
	sessionRepo := localstore.NewSessionRepository(store)

	sess := session.New(sessionRepo, log)
	if err := sess.Rehydrate(); err != nil {
		log.Fatal(err, "failed to restore session")
	}
	nav := navigation.New()

	patients := patientSvc.NewService(patientRepo, log)
	hospitals := hospitalSvc.NewService(hospitalRepo, log)
	directory := directorySvc.NewService(hospitalRepo, log)
	bookings := bookingSvc.NewService(bookingRepo, log)
	auth := authSvc.NewService(patientRepo, hospitalRepo, cfg.Security.PasswordMinLength, log)

	var sender notificationSvc.Sender
	if cfg.SMTP.Enabled {
		sender = notificationSvc.NewSMTPSender(notificationSvc.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
		})
	} else {
		sender = &notificationSvc.LogSender{Log: log}
	}
	notifications := notificationSvc.NewService(sender, log)

	// Entering the profile page re-reads the stored patient record so
	// edits made elsewhere show up.
	nav.OnEnter(navigation.PagePatientProfile, func() {
		if !sess.IsPatient() {
			return
		}
		if _, err := patients.Reload(sess); err != nil {
			log.Warn("failed to reload patient profile", "error", err)
		}
	})

	m := metrics.New("opd", prometheus.DefaultRegisterer)

	r := router.NewRouter(
		router.Config{
			RateLimit:     rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:     cfg.Server.RateLimitBurst,
			MetricsPrefix: "opd_http",
		},
		prometheus.DefaultRegisterer,
		pagesHandler.NewHandler(nav, sess, patients, hospitals, m),
		directoryHandler.NewHandler(directory, sess, nav),
		patientHandler.NewHandler(patients, bookings, sess, nav, m),
		hospitalHandler.NewHandler(hospitals, sess, nav, m),
		authHandler.NewHandler(auth, sess, nav, m),
		bookingHandler.NewHandler(bookings, sess, nav, m),
		notificationHandler.NewHandler(notifications, sess, m),
	)
	r.Setup()

	if cfg.UI.SplashDelaySeconds > 0 {
		log.Info("warming up", "seconds", cfg.UI.SplashDelaySeconds)
		time.Sleep(time.Duration(cfg.UI.SplashDelaySeconds) * time.Second)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}
	log.Info("server exited")
}

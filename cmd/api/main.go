package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	"github.com/BruksfildServices01/barber-club/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-club/internal/db"
	clubdomain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	reminderdomain "github.com/BruksfildServices01/barber-club/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-club/internal/infra/notify"
	"github.com/BruksfildServices01/barber-club/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/barber-club/internal/infra/repository"
	"github.com/BruksfildServices01/barber-club/internal/infra/storage"
	"github.com/BruksfildServices01/barber-club/internal/logger"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/routes"
	ucReminder "github.com/BruksfildServices01/barber-club/internal/usecase/reminder"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := dbpkg.Migrate(db, cfg.DefaultTimezone); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// ======================================================
	// 🔌 DEPENDÊNCIAS EXTERNAS
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	var gateway clubdomain.PaymentGateway
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.MercadoPagoBackURL, log)
		if err != nil {
			log.Fatal("mercado pago setup failed", zap.Error(err))
		}
		gateway = mp
	} else {
		log.Warn("MERCADOPAGO_ACCESS_TOKEN not set; gateway subscriptions disabled")
	}

	var notifier reminderdomain.Notifier = notify.LogNotifier{Log: log}
	if cfg.WhatsAppWebhookURL != "" {
		notifier = notify.NewWhatsApp(cfg.WhatsAppWebhookURL, cfg.WhatsAppToken, &http.Client{Timeout: 10 * time.Second}, log)
	}

	s3cfg := storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}
	var images *storage.Images
	if cfg.S3Bucket != "" {
		images = storage.NewImages(storage.NewS3Client(s3cfg), s3cfg)
	} else {
		images = storage.NewImages(nil, s3cfg)
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Metrics: m,
		Audit:   auditDispatcher,
		Gateway: gateway,
		Images:  images,
	})

	// ======================================================
	// ⏰ LEMBRETES
	// ======================================================
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := ucReminder.NewSweeper(
		infraRepo.NewReminderGormRepository(db),
		notifier,
		rdb,
		cfg.ReminderWindow,
		m,
		log,
	)
	scheduler := ucReminder.NewScheduler(sweeper, cfg.ReminderInterval, log)
	scheduler.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	scheduler.Stop()
	auditDispatcher.Close()
}

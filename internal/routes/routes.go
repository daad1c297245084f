package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	"github.com/BruksfildServices01/barber-club/internal/config"
	clubdomain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-club/internal/infra/repository"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/middleware"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-club/internal/usecase/appointment"
	ucClub "github.com/BruksfildServices01/barber-club/internal/usecase/club"
	ucCommission "github.com/BruksfildServices01/barber-club/internal/usecase/commission"
	ucReminder "github.com/BruksfildServices01/barber-club/internal/usecase/reminder"
	ucSettlement "github.com/BruksfildServices01/barber-club/internal/usecase/settlement"
)

type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Audit   *audit.Dispatcher

	// Gateway is nil when no payment provider is configured.
	Gateway clubdomain.PaymentGateway
	Images  handlers.ImageUploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	clock := timezone.SystemClock{}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log, d.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	clubRepo := infraRepo.NewClubGormRepository(d.DB)
	settlementStore := infraRepo.NewSettlementGormStore(d.DB)
	commissionRepo := infraRepo.NewCommissionGormRepository(d.DB)
	reminderRepo := infraRepo.NewReminderGormRepository(d.DB)
	shopRepo := infraRepo.NewShopGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Metrics, clock, d.Log)
	blockTimeUC := ucAppointment.NewBlockTime(appointmentRepo, d.Audit, d.Metrics)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, clock)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, clock)

	// ======================================================
	// 🧠 USE CASES — SETTLEMENT / CLUB / COMMISSIONS
	// ======================================================
	settleUC := ucSettlement.NewSettleAppointment(settlementStore, d.Audit, d.Metrics, clock, d.Log)
	quoteUC := ucSettlement.NewQuoteSettlement(settlementStore, clock)

	plansUC := ucClub.NewPlans(clubRepo, d.Audit)
	storefrontUC := ucClub.NewStorefront(clubRepo)
	subscribeUC := ucClub.NewSubscribe(clubRepo, d.Gateway, d.Audit, d.Metrics, clock, d.Log)
	cancelSubscriptionUC := ucClub.NewCancelSubscription(clubRepo, d.Gateway, d.Audit, d.Metrics)
	listSubscriptionsUC := ucClub.NewListSubscriptions(clubRepo)
	membershipUC := ucClub.NewMembership(clubRepo, clock)
	gatewayEventUC := ucClub.NewApplyGatewayEvent(clubRepo, d.Gateway, d.Audit, d.Metrics, clock, d.Log)

	payoutsUC := ucCommission.NewPayouts(commissionRepo, shopRepo, d.Audit, clock)
	offsetsUC := ucReminder.NewOffsets(reminderRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB, d.Images, d.Log)
	staffHandler := handlers.NewStaffHandler(d.DB, d.Audit)

	barberProductHandler := handlers.NewBarberProductHandler(d.DB, d.Images, d.Audit, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentHandlerDeps{
		Create:       createAppointmentUC,
		Block:        blockTimeUC,
		Cancel:       cancelAppointmentUC,
		Confirm:      confirmAppointmentUC,
		ListByDate:   listAppointmentsByDateUC,
		ListByMonth:  listAppointmentsByMonthUC,
		Availability: availabilityUC,
		Settle:       settleUC,
		Quote:        quoteUC,
		Log:          d.Log,
	})

	clubHandler := handlers.NewClubHandler(plansUC, listSubscriptionsUC, subscribeUC, cancelSubscriptionUC, membershipUC, d.Log)
	commissionHandler := handlers.NewCommissionHandler(payoutsUC, d.Log)
	reminderHandler := handlers.NewReminderHandler(offsetsUC, d.Log)
	webhookHandler := handlers.NewWebhookHandler(gatewayEventUC, d.Log)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	publicHandler := handlers.NewPublicHandler(d.DB, availabilityUC, createAppointmentUC, storefrontUC, subscribeUC, d.Log)

	publicLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.PublicRateLimitRPS),
		Burst: cfg.PublicRateLimitBurst,
	})

	// ======================================================
	// 🩺 OPERAÇÃO
	// ======================================================
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimiter.RateLimit())
		{
			publicAPI.GET("/:slug/products", publicHandler.ListProducts)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/club/plans", publicHandler.Plans)
			publicAPI.POST("/:slug/club/subscriptions", publicHandler.Subscribe)
		}

		api.POST("/webhooks/payments", webhookHandler.Payments)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", publicLimiter.RateLimit(), authHandler.Register)
		api.POST("/auth/login", publicLimiter.RateLimit(), authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id/membership", clubHandler.Membership)

			secured.GET("/me/products", barberProductHandler.List)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/availability", appointmentHandler.Availability)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.POST("/me/appointments/block", appointmentHandler.Block)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.GET("/me/appointments/:id/settlement", appointmentHandler.Quote)
			secured.POST("/me/appointments/:id/settle", appointmentHandler.Settle)

			// ------------------------------
			// CLUB
			// ------------------------------
			secured.GET("/me/club/plans", clubHandler.ListPlans)
			secured.GET("/me/club/plans/:id", clubHandler.GetPlan)
			secured.GET("/me/club/subscriptions", clubHandler.ListSubscriptions)
			secured.POST("/me/club/subscriptions", clubHandler.Enrol)

			secured.GET("/me/reminders", reminderHandler.List)

			// ------------------------------
			// 👑 SOMENTE DONO
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireOwner())
			{
				owner.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)
				owner.POST("/me/barbershop/logo", barbershopHandler.UploadLogo)

				owner.GET("/me/staff", staffHandler.List)
				owner.POST("/me/staff", staffHandler.Create)
				owner.PATCH("/me/staff/:id/commission", staffHandler.UpdateCommission)

				owner.POST("/me/products", barberProductHandler.Create)
				owner.PATCH("/me/products/:id", barberProductHandler.Update)
				owner.POST("/me/products/:id/image", barberProductHandler.UploadImage)

				owner.POST("/me/club/plans", clubHandler.CreatePlan)
				owner.PUT("/me/club/plans/:id", clubHandler.UpdatePlan)
				owner.PATCH("/me/club/plans/:id/publish", clubHandler.PublishPlan)
				owner.PATCH("/me/club/subscriptions/:id/cancel", clubHandler.CancelSubscription)

				owner.GET("/me/commissions", commissionHandler.ListPending)
				owner.POST("/me/commissions/payout", commissionHandler.Payout)

				owner.PUT("/me/reminders", reminderHandler.Replace)

				owner.GET("/me/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

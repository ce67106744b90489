package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	"github.com/BruksfildServices01/carwash-scheduler/internal/config"
	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/carwash-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/carwash-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/carwash-scheduler/internal/middleware"
	"github.com/BruksfildServices01/carwash-scheduler/internal/payment"
	"github.com/BruksfildServices01/carwash-scheduler/internal/session"
	"github.com/BruksfildServices01/carwash-scheduler/internal/storage"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
	ucDashboard "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/dashboard"
	ucPlan "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/plan"
	ucProfile "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/profile"
	ucReservation "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/validators"
)

// Deps are the process-wide resources. Redis, Files and Payments may be nil;
// the features that need them then answer "unavailable".
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions session.Store
	Redis    *redis.Client
	Files    storage.ObjectStore
	Payments payment.Gateway
	Audit    *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	loc := timezone.Location(cfg.Timezone)

	reservationRepo := infraRepo.NewReservationGormRepository(d.DB)
	profileRepo := infraRepo.NewProfileGormRepository(d.DB)
	planRepo := infraRepo.NewPlanGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)

	sessions := session.NewManager(cfg.JWTSecret, d.Sessions)

	var checkDomain func(string) bool
	if cfg.CheckEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES
	// ======================================================
	getMe := ucProfile.NewGetMe(profileRepo, planRepo, d.Files)
	plans := ucPlan.NewPlans(planRepo, d.Audit)

	reservations := handlers.ReservationUseCases{
		Create:         ucReservation.NewCreateReservation(reservationRepo, d.Audit, loc),
		CreateRepeat:   ucReservation.NewCreateRepeating(reservationRepo, d.Audit, loc),
		ListByDate:     ucReservation.NewListByDate(reservationRepo),
		ListByCustomer: ucReservation.NewListByCustomer(reservationRepo),
		UpdateStatus:   ucReservation.NewUpdateStatus(reservationRepo, d.Audit),
		UpdatePayment:  ucReservation.NewUpdatePayment(reservationRepo, d.Audit),
		Cancel:         ucReservation.NewCancel(reservationRepo, d.Audit),
		Rate:           ucReservation.NewRate(reservationRepo),
		Checkout:       ucReservation.NewStartCheckout(reservationRepo, d.Payments, cfg.PublicBaseURL),
		Account:        ucProfile.NewGetAccount(profileRepo, planRepo),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		sessions,
		ucProfile.NewSignUp(profileRepo, d.Audit, cfg.BootstrapAdminEmail, checkDomain),
		ucProfile.NewSignIn(profileRepo),
	)

	meHandler := handlers.NewMeHandler(
		getMe,
		ucProfile.NewUpdateMe(profileRepo, getMe),
		ucProfile.NewUploadAvatar(profileRepo, d.Files, getMe),
		ucProfile.NewGetStamps(profileRepo),
	)

	publicHandler := handlers.NewPublicHandler(
		cfg.WhatsAppNumber,
		ucReservation.NewListFreeSlots(reservationRepo),
		plans,
	)

	reservationHandler := handlers.NewReservationHandler(reservations)

	userHandler := handlers.NewUserHandler(
		ucProfile.NewListUsers(profileRepo),
		ucProfile.NewEditUsers(profileRepo, d.Audit),
		ucProfile.NewDeleteUser(profileRepo, d.Files, d.Audit),
		ucProfile.NewAdjustStamps(profileRepo, d.Audit),
		ucProfile.NewRecordVisit(profileRepo, d.Audit, loc),
	)

	planHandler := handlers.NewPlanHandler(plans)
	dashboardHandler := handlers.NewDashboardHandler(ucDashboard.NewSummary(dashboardRepo, loc))
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, loc)
	webhookHandler := handlers.NewWebhookHandler(
		ucReservation.NewConfirmPayment(reservationRepo, d.Payments, d.Audit),
	)

	limited := middleware.RateLimit(d.Redis, cfg.RateLimitPerMinute)
	authed := []gin.HandlerFunc{middleware.Auth(sessions), middleware.LoadRole(profileRepo)}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/catalog", publicHandler.Catalog)
			public.GET("/slots", publicHandler.Slots)
			public.GET("/plans", publicHandler.Plans)
			public.POST("/booking-message", limited, publicHandler.BookingMessage)
		}

		api.POST("/webhooks/mercadopago", webhookHandler.MercadoPago)

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		{
			auth.POST("/sign-up", limited, authHandler.SignUp)
			auth.POST("/sign-in", limited, authHandler.SignIn)
			auth.POST("/refresh", limited, authHandler.Refresh)
			auth.POST("/sign-out", middleware.Auth(sessions), authHandler.SignOut)
		}

		// ------------------------------
		// ANY SIGNED-IN USER
		// ------------------------------
		me := api.Group("/me", authed...)
		{
			me.GET("", meHandler.GetMe)
			me.PATCH("", meHandler.UpdateMe)
			me.POST("/avatar", meHandler.UploadAvatar)
			me.GET("/stamps", meHandler.Stamps)
			me.GET("/navigation", meHandler.Navigation)
			me.GET("/access", meHandler.Access)

			me.GET("/reservations", reservationHandler.ListMine)
			me.POST("/reservations", limited, reservationHandler.Create)
			me.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)
			me.PATCH("/reservations/:id/rating", reservationHandler.Rate)
			me.POST("/reservations/:id/checkout", reservationHandler.Checkout)
		}

		// ------------------------------
		// STAFF (admin, it)
		// ------------------------------
		staff := api.Group("/staff", authed...)
		staff.Use(middleware.RequireRole(access.RoleAdmin, access.RoleIT))
		{
			staff.GET("/reservations", reservationHandler.ListByDate)
			staff.POST("/reservations/repeating", reservationHandler.CreateRepeating)
			staff.PATCH("/reservations/:id/status", reservationHandler.UpdateStatus)
			staff.PATCH("/reservations/:id/payment", reservationHandler.UpdatePayment)

			staff.GET("/dashboard", dashboardHandler.Summary)
			staff.GET("/dashboard/windows", dashboardHandler.Windows)

			staff.GET("/users/:id/reservations", reservationHandler.ListForUser)
			staff.POST("/users/:id/stamps", userHandler.AdjustStamps)
			staff.POST("/users/:id/visits", userHandler.RecordVisit)
			staff.PATCH("/users/:id/plan", userHandler.AssignPlan)

			staff.POST("/plans", planHandler.Create)
			staff.PATCH("/plans", planHandler.SaveDrafts)
			staff.PATCH("/plans/:id", planHandler.Update)
			staff.DELETE("/plans/:id", planHandler.Delete)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin", authed...)
		admin.Use(middleware.RequireRole(access.RoleAdmin))
		{
			admin.GET("/users", userHandler.List)
			admin.PATCH("/users", userHandler.SaveDrafts)
			admin.PATCH("/users/:id/role", userHandler.ChangeRole)
			admin.DELETE("/users/:id", userHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

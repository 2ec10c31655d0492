package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/handler"
	"github.com/educonnect/educonnect-backend/internal/middleware"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Admin        *handler.AdminHandler
	Parent       *handler.ParentHandler
	Class        *handler.ClassHandler
	Timetable    *handler.TimetableHandler
	Attendance   *handler.AttendanceHandler
	Grade        *handler.GradeHandler
	Finance      *handler.FinanceHandler
	Transaction  *handler.TransactionHandler
	Announcement *handler.AnnouncementHandler
	Messaging    *handler.MessagingHandler
	Calendar     *handler.CalendarHandler
	HealthRecord *handler.HealthRecordHandler
	Setting      *handler.SettingHandler
	System       *handler.SystemHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// loginLimiter may be nil, which disables login rate limiting.
func SetupRouter(
	auth middleware.TokenValidator,
	loginLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	// ClientIP keys the login limiter; forwarded headers only count from known proxies.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.Recovery(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Apply brotli middleware globally. WebSocket paths are excluded.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/settings", handlers.Setting.GetPublicSettings)
	}

	// The gateway calls this without a token; the body signature is the guard.
	router.POST("/api/v1/transactions/webhook/paystack", handlers.Transaction.PaystackWebhook)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	authAPI := router.Group("/api/v1/auth")
	{
		login := []gin.HandlerFunc{handlers.Auth.Login}
		if loginLimiter != nil {
			login = append([]gin.HandlerFunc{loginLimiter.Middleware()}, login...)
		}
		authAPI.POST("/login", login...)
		authAPI.GET("/me", middleware.RequireAuth(auth), handlers.Auth.Me)
	}

	// ─── 2. WebSocket Group (token in query) ───────────────────────────
	wsAPI := router.Group("/ws/v1")
	wsAPI.Use(middleware.RequireWSAuth(auth))
	{
		wsAPI.GET("/messaging/stream", handlers.WS.MessagingStream)
	}

	// ─── 3. Authenticated API ──────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(auth))

	adminOnly := middleware.RequireRoles(model.RoleAdmin)
	staff := middleware.RequireRoles(middleware.Staff...)
	financeStaff := middleware.RequireRoles(middleware.FinanceStaff...)
	studentOnly := middleware.RequireRoles(model.RoleStudent)

	// Directory
	users := api.Group("/users")
	{
		users.GET("/search",
			middleware.RequireRoles(model.RoleAdmin, model.RoleTeacher, model.RoleAccountant),
			handlers.User.SearchUsers,
		)
		users.GET("", adminOnly, handlers.User.ListUsers)
		users.POST("", adminOnly, handlers.User.CreateUser)
		users.GET("/:id", adminOnly, handlers.User.GetUser)
		users.PATCH("/:id", adminOnly, handlers.User.UpdateUser)
		users.DELETE("/:id", adminOnly, handlers.User.DeleteUser)
	}

	adminAPI := api.Group("/admin")
	adminAPI.Use(adminOnly)
	{
		adminAPI.POST("/link-parent", handlers.Admin.LinkParent)
		adminAPI.POST("/promote", handlers.Admin.PromoteClass)
		adminAPI.GET("/dashboard", handlers.Admin.GetDashboardStats)
	}

	parentAPI := api.Group("/parent")
	parentAPI.Use(middleware.RequireRoles(model.RoleParent))
	{
		parentAPI.GET("/children", handlers.Parent.ListChildren)
		parentAPI.GET("/children/:childId/attendance", handlers.Parent.ChildAttendance)
		parentAPI.GET("/children/:childId/grades", handlers.Parent.ChildGrades)
		parentAPI.GET("/children/:childId/invoices", handlers.Parent.ChildInvoices)
	}

	// Academic structure
	classes := api.Group("/classes")
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.POST("", adminOnly, handlers.Class.CreateClass)
		classes.GET("/my-class", handlers.Class.MyClass)
		classes.GET("/my-roster",
			middleware.RequireRoles(model.RoleTeacher, model.RoleStudent),
			handlers.Class.MyRoster,
		)
		classes.GET("/:id", handlers.Class.GetClass)
		classes.POST("/:id/assign", adminOnly, handlers.Class.AssignUser)
		classes.GET("/:id/roster", staff, handlers.Class.Roster)
	}

	timetables := api.Group("/timetables")
	{
		timetables.POST("", adminOnly, handlers.Timetable.CreateEntry)
		timetables.GET("/class/:classId", handlers.Timetable.ListByClass)
		timetables.GET("/my",
			middleware.RequireRoles(model.RoleTeacher, model.RoleStudent),
			handlers.Timetable.Mine,
		)
	}

	// Academic records
	attendance := api.Group("/attendance")
	{
		attendance.POST("", staff, handlers.Attendance.RecordRollCall)
		attendance.GET("", staff, handlers.Attendance.ByDate)
		attendance.GET("/student/:studentId", staff, handlers.Attendance.ByStudent)
		attendance.GET("/my", studentOnly, handlers.Attendance.Mine)
	}

	grades := api.Group("/grades")
	{
		grades.POST("", middleware.RequireRoles(model.RoleTeacher), handlers.Grade.CreateGrade)
		grades.GET("/student/:studentId", staff, handlers.Grade.ByStudent)
		grades.GET("/my", studentOnly, handlers.Grade.Mine)
		grades.PATCH("/:id", staff, handlers.Grade.UpdateGrade)
		grades.DELETE("/:id", staff, handlers.Grade.DeleteGrade)
	}

	// Finance
	finance := api.Group("/finance")
	{
		finance.POST("/fee-structures", financeStaff, handlers.Finance.CreateFeeStructure)
		finance.GET("/fee-structures", handlers.Finance.ListFeeStructures)
		finance.POST("/invoices", financeStaff, handlers.Finance.CreateInvoice)
		finance.GET("/invoices", financeStaff, handlers.Finance.ListInvoices)
		finance.GET("/invoices/student/:studentId", financeStaff, handlers.Finance.StudentInvoices)
		finance.GET("/invoices/my", studentOnly, handlers.Finance.MyInvoices)
	}

	transactions := api.Group("/transactions")
	{
		transactions.POST("/initiate", middleware.RequireRoles(middleware.Payers...), handlers.Transaction.Initiate)
		transactions.GET("", financeStaff, handlers.Transaction.ListTransactions)
	}

	// Communication
	announcements := api.Group("/announcements")
	{
		announcements.POST("", staff, handlers.Announcement.CreateAnnouncement)
		announcements.GET("", handlers.Announcement.ListAnnouncements)
		announcements.GET("/pending", adminOnly, handlers.Announcement.ListPending)
		announcements.PATCH("/:id/status", adminOnly, handlers.Announcement.ReviewAnnouncement)
	}

	messaging := api.Group("/messaging")
	{
		messaging.POST("/conversations", handlers.Messaging.CreateConversation)
		messaging.GET("/conversations", handlers.Messaging.ListConversations)
		messaging.POST("/conversations/:id/messages", handlers.Messaging.SendMessage)
	}

	calendar := api.Group("/calendar")
	{
		calendar.POST("", adminOnly, handlers.Calendar.CreateEvent)
		calendar.GET("", handlers.Calendar.ListEvents)
	}

	// Health data must never be cached by browsers or proxies.
	health := api.Group("/health-records")
	health.Use(middleware.NoStore())
	{
		health.PUT("/student/:studentId", adminOnly, handlers.HealthRecord.UpsertRecord)
		health.GET("/student/:studentId",
			middleware.RequireRoles(model.RoleAdmin, model.RoleTeacher, model.RoleParent),
			handlers.HealthRecord.GetRecord,
		)
		health.GET("/my", studentOnly, handlers.HealthRecord.MyRecord)
	}

	settings := api.Group("/settings")
	settings.Use(adminOnly)
	{
		settings.GET("", handlers.Setting.GetAllSettings)
		settings.PUT("", handlers.Setting.UpdateSettings)
	}

	return router
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coachtrack/internal/auth"
	"github.com/BruksfildServices01/coachtrack/internal/billing"
	"github.com/BruksfildServices01/coachtrack/internal/catalog"
	"github.com/BruksfildServices01/coachtrack/internal/handlers"
	infraRepo "github.com/BruksfildServices01/coachtrack/internal/infra/repository"
	"github.com/BruksfildServices01/coachtrack/internal/metrics"
	"github.com/BruksfildServices01/coachtrack/internal/middleware"
	"github.com/BruksfildServices01/coachtrack/internal/storage"
	"github.com/BruksfildServices01/coachtrack/internal/timezone"
	ucAccount "github.com/BruksfildServices01/coachtrack/internal/usecase/account"
	ucCoaching "github.com/BruksfildServices01/coachtrack/internal/usecase/coaching"
)

// Deps are the process-wide collaborators built in main. Avatars is nil when
// object storage is not configured.
type Deps struct {
	DB       *gorm.DB
	Timezone string
	Logger   *zap.Logger

	Issuer  *auth.Issuer
	Audit   ucCoaching.EventDispatcher
	Limiter *middleware.RateLimiter

	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	Catalog       *catalog.Service
	Avatars       *storage.AvatarStore
	Subscriptions *billing.Subscriptions
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Logger, d.Metrics))
	r.Use(middleware.CORSMiddleware())

	loc := timezone.Location(d.Timezone)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	coachingRepo := infraRepo.NewCoachingGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	registerUC := ucAccount.NewRegister(userRepo, d.Issuer, auth.HashPassword, nil, nil)
	loginUC := ucAccount.NewLogin(userRepo, d.Issuer, auth.CheckPassword)

	var avatarUC *ucAccount.UpdateAvatar
	if d.Avatars != nil {
		avatarUC = ucAccount.NewUpdateAvatar(userRepo, d.Avatars, d.Audit)
	}

	// ======================================================
	// USE CASES: COACHING
	// ======================================================
	inviteUC := ucCoaching.NewInviteClient(coachingRepo, d.Audit)
	respondUC := ucCoaching.NewRespondInvitation(coachingRepo, d.Audit)
	deleteInvitationUC := ucCoaching.NewDeleteInvitation(coachingRepo, d.Audit)
	listReceivedUC := ucCoaching.NewListReceivedInvitations(coachingRepo)
	listSentUC := ucCoaching.NewListSentInvitations(coachingRepo)

	assignUC := ucCoaching.NewAssignCoach(coachingRepo, d.Audit)
	assignByCodeUC := ucCoaching.NewAssignClientByCode(coachingRepo, d.Audit)
	unassignUC := ucCoaching.NewUnassignClient(coachingRepo, d.Audit)
	leaveUC := ucCoaching.NewLeaveCoach(coachingRepo, d.Audit)
	listClientsUC := ucCoaching.NewListClients(coachingRepo)
	homeSummaryUC := ucCoaching.NewHomeSummary(coachingRepo, loc, nil)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC)
	meHandler := handlers.NewMeHandler(d.DB, avatarUC)

	invitationHandler := handlers.NewInvitationHandler(
		inviteUC,
		respondUC,
		deleteInvitationUC,
		listReceivedUC,
		listSentUC,
	)

	coachHandler := handlers.NewCoachHandler(
		assignUC,
		assignByCodeUC,
		unassignUC,
		leaveUC,
		listClientsUC,
		homeSummaryUC,
	)

	directoryHandler := handlers.NewDirectoryHandler(d.DB)
	mealHandler := handlers.NewMealHandler(d.DB, loc)
	workoutHandler := handlers.NewWorkoutHandler(d.DB)
	dashboardHandler := handlers.NewDashboardHandler(d.DB, loc)
	catalogHandler := handlers.NewCatalogHandler(d.Catalog)
	subscriptionHandler := handlers.NewSubscriptionHandler(d.Subscriptions, d.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, loc)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))
	}

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	r.POST("/webhooks/mercadopago", subscriptionHandler.Webhook)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Issuer))
	if d.Limiter != nil {
		secured.Use(d.Limiter.General())
	}

	inviteLimit := func(c *gin.Context) { c.Next() }
	if d.Limiter != nil {
		inviteLimit = d.Limiter.Invite()
	}

	// ------------------------------
	// USERS
	// ------------------------------
	secured.GET("/users/me", meHandler.GetMe)
	secured.GET("/users/me/dashboard-stats", dashboardHandler.MyStats)
	secured.GET("/users/me/audit-logs", auditLogsHandler.List)
	secured.PATCH("/users/me/description", meHandler.UpdateDescription)
	secured.PATCH("/users/me/goals", meHandler.UpdateMyGoals)
	secured.POST("/users/me/avatar", meHandler.UploadAvatar)
	secured.DELETE("/users/me/coach", coachHandler.LeaveCoach)

	secured.GET("/users/:user_id", meHandler.GetUser)
	secured.PATCH("/users/:user_id/goals", meHandler.UpdateUserGoals)
	secured.PUT("/users/:user_id/assign-coach/:coach_id", coachHandler.AssignCoach)

	// ------------------------------
	// INVITATIONS
	// ------------------------------
	secured.POST("/coaches/invite-client", inviteLimit, invitationHandler.Invite)
	secured.DELETE("/coaches/invitations/:invitation_id", invitationHandler.Delete)
	secured.GET("/coaches/me/sent-invitations", invitationHandler.ListSent)

	secured.GET("/clients/me/invitations", invitationHandler.ListMine)
	secured.PATCH("/clients/invitations/:invitation_id", invitationHandler.Respond)

	// ------------------------------
	// COACH ROSTER
	// ------------------------------
	secured.GET("/coaches", directoryHandler.ListCoaches)
	secured.GET("/coaches/:coach_id/public-profile", directoryHandler.PublicProfile)
	secured.GET("/clients/search-coaches", directoryHandler.SearchCoaches)

	secured.POST("/coaches/:coach_id/add-client", coachHandler.AddClient)
	secured.GET("/coaches/:coach_id/clients", coachHandler.ListClients)
	secured.DELETE("/coaches/:coach_id/clients/:client_id", coachHandler.RemoveClient)
	secured.GET("/coaches/:coach_id/home-summary", coachHandler.HomeSummary)

	secured.GET("/coaches/client/:client_id/dashboard-stats", dashboardHandler.ClientStats)
	secured.GET("/coaches/client-details/:client_id", dashboardHandler.ClientDetails)

	// ------------------------------
	// MEALS
	// ------------------------------
	secured.POST("/meals", mealHandler.Create)
	secured.GET("/meals/daily", mealHandler.Daily)
	secured.PUT("/meals/:meal_id", mealHandler.Update)
	secured.DELETE("/meals/:meal_id", mealHandler.Delete)
	secured.PATCH("/meals/:meal_id/toggle-consume", mealHandler.ToggleConsume)

	secured.POST("/coaches/clients/:client_id/meals", mealHandler.CoachCreate)
	secured.PUT("/coaches/meals/:meal_id", mealHandler.CoachUpdate)
	secured.DELETE("/coaches/meals/:meal_id", mealHandler.CoachDelete)

	// ------------------------------
	// WORKOUTS
	// ------------------------------
	secured.POST("/workouts", workoutHandler.Create)
	secured.GET("/workouts/my-workouts", workoutHandler.MyWorkouts)
	secured.DELETE("/workouts/:workout_id", workoutHandler.Delete)
	secured.PATCH("/workouts/:workout_id/toggle-complete", workoutHandler.ToggleComplete)

	secured.POST("/coaches/clients/:client_id/workouts", workoutHandler.CoachCreate)
	secured.PUT("/coaches/workouts/:workout_id", workoutHandler.CoachUpdate)
	secured.DELETE("/coaches/workouts/:workout_id", workoutHandler.CoachDelete)

	// ------------------------------
	// CATALOG
	// ------------------------------
	secured.GET("/foods/search", catalogHandler.SearchFoods)
	secured.GET("/foods/scan/:barcode", catalogHandler.ScanProduct)
	secured.GET("/foods/:code/nutrients", catalogHandler.FoodNutrients)
	secured.GET("/exercises/muscles", catalogHandler.Muscles)
	secured.GET("/exercises/muscles/:muscle", catalogHandler.MuscleExercises)

	// ------------------------------
	// VIP SUBSCRIPTION
	// ------------------------------
	secured.GET("/clients/me/subscription", subscriptionHandler.Status)
	secured.POST("/clients/me/subscription/checkout", subscriptionHandler.Checkout)
}

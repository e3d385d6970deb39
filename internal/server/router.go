// Package server assembles the gin engine.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ukydev/fleet-dashboard/internal/advisor"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/handlers"
	"github.com/ukydev/fleet-dashboard/internal/middleware"
	"github.com/ukydev/fleet-dashboard/internal/notify"
	"github.com/ukydev/fleet-dashboard/internal/policy"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// Dependencies are the collaborators the routes need. Advisor and
// Publisher may be nil.
type Dependencies struct {
	Store      db.Store
	Evaluator  *policy.Evaluator
	Advisor    *advisor.Service
	Publisher  notify.Publisher
	Log        logrus.FieldLogger
	DataSource string

	ServiceName       string
	Tracing           bool
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter builds the engine with middleware and every API route.
func NewRouter(deps Dependencies) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	evaluator := deps.Evaluator
	if evaluator == nil {
		evaluator = policy.NewEvaluator(log)
	}
	advisorSvc := deps.Advisor
	if advisorSvc == nil {
		advisorSvc = advisor.NewService(nil, nil, 0, log)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery(log), middleware.AccessLog(log))
	if deps.Tracing {
		router.Use(otelgin.Middleware(deps.ServiceName))
	}
	router.Use(middleware.CORS(deps.CORSOrigins))
	router.NoRoute(func(c *gin.Context) { response.NotFound(c, "route") })

	health := handlers.NewHealthHandler(deps.DataSource, advisorSvc.Configured())
	router.GET("/health", health.Health)

	store := deps.Store
	policyH := handlers.NewPolicyHandler(store, store, evaluator, deps.Publisher, log)
	users := handlers.NewUserHandler(store, log)
	vehicles := handlers.NewVehicleHandler(store, log)
	chauffeurs := handlers.NewChauffeurHandler(store, log)
	trips := handlers.NewTripHandler(store, log)
	costsH := handlers.NewCostHandler(store, log)
	maintenance := handlers.NewMaintenanceHandler(store, log)
	advisorH := handlers.NewAdvisorHandler(advisorSvc, store, store, store, log)

	api := router.Group("/api")
	if deps.RateLimitRequests > 0 && deps.RateLimitWindow > 0 {
		api.Use(middleware.NewRateLimiter(deps.RateLimitRequests, deps.RateLimitWindow).Handler())
	}
	{
		api.GET("/policy/summaries", policyH.Summaries)
		api.GET("/policy/summaries/:employeeId", policyH.Summary)
		api.GET("/policy/rejections", policyH.Rejections)
		api.POST("/policy/alerts", policyH.PublishAlerts)

		api.GET("/users", users.List)
		api.POST("/users", users.Create)

		api.GET("/vehicles", vehicles.List)
		api.POST("/vehicles", vehicles.Create)
		api.GET("/vehicles/:id", vehicles.Get)
		api.POST("/vehicles/:id/assignments", vehicles.AppendAssignment)
		api.POST("/vehicles/:id/odometer", vehicles.RecordOdometer)

		api.GET("/chauffeurs", chauffeurs.List)

		api.GET("/trips", trips.List)
		api.GET("/trips/export", trips.Export)

		api.GET("/costs", costsH.List)
		api.GET("/costs/summary", costsH.Summary)

		api.GET("/maintenance", maintenance.List)

		api.POST("/advisor/maintenance", advisorH.Maintenance)
		api.POST("/advisor/trip-plan", advisorH.TripPlan)
		api.POST("/advisor/cost-forecast", advisorH.CostForecast)
	}

	return router
}

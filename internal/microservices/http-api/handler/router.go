package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookplanner/internal/microservices/http-api/middleware"
	"bookplanner/internal/microservices/http-api/service"
	"bookplanner/internal/microservices/websocket"
)

// RouterDeps collects everything NewRouter wires together.
type RouterDeps struct {
	Books         service.BookService
	Goals         service.GoalService
	Stats         service.StatsService
	Data          service.DataService
	Notifications service.NotificationService
	Hub           *websocket.Hub
	DB            Pinger
	Metrics       http.Handler
	Limiter       *middleware.IPRateLimiter
	CORSOrigins   []string
	Logger        *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(deps.CORSOrigins))
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter))
	}

	if deps.DB != nil {
		NewHealthHandler(deps.DB).RegisterRoutes(r)
	}
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := r.Group("/api")
	NewBookHandler(deps.Books).RegisterRoutes(api.Group("/books"))
	NewGoalsHandler(deps.Goals).RegisterRoutes(api.Group("/goals"))
	NewStatsHandler(deps.Stats).RegisterRoutes(api.Group("/stats"))
	NewDataHandler(deps.Data).RegisterRoutes(api.Group("/data"))
	NewNotificationHandler(deps.Notifications).RegisterRoutes(api.Group("/notifications"))

	if deps.Hub != nil {
		r.GET("/ws/notifications", websocket.WSHandler(deps.Hub))
	}
	return r
}

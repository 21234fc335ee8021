package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-events/backend/config"
	"campus-events/backend/internal/api/handler"
	"campus-events/backend/internal/api/middleware"
	"campus-events/backend/internal/model"
	"campus-events/backend/pkg/jwt"
	"campus-events/backend/pkg/redis"
)

// maxBodyBytes 请求体上限，签到/评分请求均为小 JSON
const maxBodyBytes = 1 << 20 // 1 MiB

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RoleAuth(model.RoleAdmin)
	adminOrEvaluator := middleware.RoleAuth(model.RoleAdmin, model.RoleEvaluator)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块（管理员）
			users := authorized.Group("/users", adminOnly)
			{
				users.POST("", h.User.CreateUser)
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeleteUser)
			}

			// 活动模块
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.ListEvents)
				events.GET("/:id", h.Event.GetEvent)
				events.POST("", adminOnly, h.Event.CreateEvent)
				events.PUT("/:id", adminOnly, h.Event.UpdateEvent)
				events.DELETE("/:id", adminOnly, h.Event.DeleteEvent)

				// 活动下的场次
				events.GET("/:id/sessions", h.Session.ListSessions)
				events.POST("/:id/sessions", adminOnly, h.Session.CreateSession)
			}

			// 场次模块
			sessions := authorized.Group("/sessions")
			{
				sessions.GET("/:id", h.Session.GetSession)
				sessions.PUT("/:id", adminOnly, h.Session.UpdateSession)
				sessions.DELETE("/:id", adminOnly, h.Session.DeleteSession)

				// 场次下的报告
				sessions.GET("/:id/presentations", h.Presentation.ListPresentations)
				sessions.POST("/:id/presentations", adminOnly, h.Presentation.CreatePresentation)
			}

			// 报告与评分模块
			presentations := authorized.Group("/presentations")
			{
				presentations.GET("/:id", h.Presentation.GetPresentation)
				presentations.PUT("/:id", adminOnly, h.Presentation.UpdatePresentation)
				presentations.DELETE("/:id", adminOnly, h.Presentation.DeletePresentation)

				presentations.POST("/:id/evaluations", adminOrEvaluator, h.Evaluation.SubmitEvaluation)
				presentations.PUT("/:id/evaluations", adminOrEvaluator, h.Evaluation.UpdateEvaluation)
				presentations.GET("/:id/evaluations", adminOnly, h.Evaluation.GetScoreSummary)
			}

			// 签到模块
			checkin := authorized.Group("/checkin")
			{
				// PIN 暴力猜测由限流抑制
				rateLimited := middleware.RateLimit(rdb, cfg.Checkin.RateLimitPerMinute, time.Minute)

				checkin.POST("", rateLimited, h.Checkin.Checkin)
				checkin.POST("/checkout", rateLimited, h.Checkin.Checkout)
				checkin.POST("/pin/validate", rateLimited, h.Checkin.ValidatePin)

				checkin.POST("/pin", adminOnly, h.Checkin.GeneratePin)
				checkin.GET("/pin", adminOnly, h.Checkin.GetActivePin)
				checkin.GET("/records", adminOnly, h.Checkin.ListCheckinReport)
			}

			// 导出模块（管理员）
			export := authorized.Group("/export", adminOnly)
			{
				export.GET("/checkin-report", h.Export.ExportCheckinReport)
				export.GET("/events/:id/schedule", h.Export.ExportEventSchedule)
			}
		}
	}

	return r
}

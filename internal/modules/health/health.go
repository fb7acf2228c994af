package health

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartnotes/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	db      *gorm.DB
	started time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, started: time.Now()}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "degraded"
		dbStatus = err.Error()
	}

	response.OK(c, gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}

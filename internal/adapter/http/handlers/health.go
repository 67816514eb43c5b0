package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/adapter/http/middleware"
)

const (
	StatusOk      = "ok"
	StatusDown    = "down"
	pingTimeout   = 2 * time.Second
	healthTimeFmt = "2006-01-02 15:04:05"
)

// Pinger is a dependency the health report pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Database    string `json:"database"`
	Driver      string `json:"driver"`
	Preferences string `json:"preferences"`
}

type HealthAdvanced struct {
	HealthBasic
	Timezone string         `json:"timezone"`
	Language string         `json:"language"`
	Status   HealthServices `json:"status"`
}

type HealthHandler struct {
	db          *sqlx.DB
	preferences Pinger
	now         func() time.Time
}

// NewHealthHandler reports on db and the preferences store. now is the server
// clock; its zone is the one calendar days are computed in.
func NewHealthHandler(db *sqlx.DB, preferences Pinger, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{db: db, preferences: preferences, now: now}
}

// CheckHealth is the liveness check: 503 as soon as the task database is unreachable.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	basic := h.basic(StatusOk)

	if h.pingDatabase(c.Request.Context()) != StatusOk {
		statusCode = http.StatusServiceUnavailable
		basic.Message = StatusDown
	}

	c.JSON(statusCode, basic)
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	services := HealthServices{
		Database:    h.pingDatabase(ctx),
		Preferences: StatusDown,
	}
	if h.db != nil {
		services.Driver = h.db.DriverName()
	}
	if h.preferences != nil {
		services.Preferences = pingService(ctx, "preferences", h.preferences.Ping)
	}

	message := StatusOk
	if services.Database != StatusOk || services.Preferences != StatusOk {
		message = StatusDown
	}

	c.JSON(http.StatusOK, HealthAdvanced{
		HealthBasic: h.basic(message),
		Timezone:    h.now().Location().String(),
		Language:    middleware.GetLang(c),
		Status:      services,
	})
}

func (h *HealthHandler) basic(message string) HealthBasic {
	return HealthBasic{
		AppName:           envOr("APP_NAME", "flowstate"),
		AppVersion:        envOr("APP_VERSION", "dev"),
		CurrentSystemTime: h.now().Format(healthTimeFmt),
		Message:           message,
	}
}

func (h *HealthHandler) pingDatabase(ctx context.Context) string {
	if h.db == nil {
		return StatusDown
	}
	return pingService(ctx, "database", h.db.PingContext)
}

func pingService(ctx context.Context, name string, ping func(ctx context.Context) error) string {
	timeoutCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := ping(timeoutCtx); err != nil {
		zap.L().Warn("health check failed", zap.String("service", name), zap.Error(err))
		return StatusDown
	}
	return StatusOk
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

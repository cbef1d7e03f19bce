package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

// Integrations reports which optional upstreams have credentials.
type Integrations struct {
	LLM            bool `json:"llm"`
	Identification bool `json:"identification"`
	CareData       bool `json:"careData"`
}

type HealthCtrl struct {
	db  *gorm.DB
	ext Integrations
}

func NewHealthCtrl(db *gorm.DB, ext Integrations) *HealthCtrl { return &HealthCtrl{db: db, ext: ext} }

// Health pings the database. Missing integrations are reported but do not
// fail the check.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbErr := h.pingDB(ctx)
	dbOK := dbErr == ""
	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	return c.JSON(status, map[string]any{
		"status":       map[string]any{"ok": dbOK},
		"uptime_sec":   int(time.Since(appStart).Seconds()),
		"checks":       map[string]any{"database": sub{OK: dbOK, Err: dbErr}},
		"integrations": h.ext,
		"time":         time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) string {
	if h.db == nil {
		return "no database handle"
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "db handle: " + err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "ping: " + err.Error()
	}
	return ""
}

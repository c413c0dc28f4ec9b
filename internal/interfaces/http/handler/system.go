package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devicedesk/backend/internal/infrastructure/persistence"
	"github.com/devicedesk/backend/internal/interfaces/http/dto"
	"github.com/devicedesk/backend/internal/interfaces/http/router"
)

// healthPingTimeout bounds the database probe of a health check
const healthPingTimeout = 2 * time.Second

// DatabaseProbe is the part of the database the health check needs
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Stats() (persistence.ConnectionStats, error)
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	db        DatabaseProbe
	name      string
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db DatabaseProbe, name, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		name:      name,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                       `json:"status"`
	Name      string                       `json:"name"`
	Version   string                       `json:"version"`
	GoVersion string                       `json:"go_version"`
	Uptime    string                       `json:"uptime"`
	Database  string                       `json:"database"`
	Pool      *persistence.ConnectionStats `json:"pool,omitempty"`
}

// Health godoc
//
//	@Summary	Service and database health
//	@Tags		system
//	@Success	200	{object}	APIResponse[HealthResponse]
//	@Failure	503	{object}	APIResponse[HealthResponse]
//	@Router		/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Database:  "up",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		_ = c.Error(err)
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp})
		return
	}
	if stats, err := h.db.Stats(); err == nil {
		resp.Pool = &stats
	}

	h.Success(c, resp)
}

// Routes returns the system endpoints, mounted at the engine root
func (h *SystemHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("system", "").
		GET("/health", h.Health)
}

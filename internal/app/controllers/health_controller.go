package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement-portal/internal/app/models/dto"
)

// Pinger reports whether a backing store is reachable
type Pinger func(ctx context.Context) error

// HealthController reports liveness and dependency status
type HealthController struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthController creates a controller that probes every named check
func NewHealthController(checks map[string]Pinger) *HealthController {
	return &HealthController{checks: checks, timeout: 2 * time.Second}
}

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status       string            `json:"status" example:"ok"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health probes the backing stores
// @Summary Health check
// @Description Reports "ok" when every configured store answers, "degraded" otherwise
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=HealthStatus} "Healthy"
// @Failure 503 {object} dto.APIResponse{data=HealthStatus} "A dependency is down"
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := HealthStatus{Status: "ok", Dependencies: make(map[string]string, len(names))}
	code := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](reqCtx); err != nil {
			status.Dependencies[name] = "down: " + err.Error()
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Dependencies[name] = "up"
	}

	resp := dto.NewSuccessResponse(status)
	resp.Success = code == http.StatusOK
	ctx.JSON(code, resp)
}

// Banner answers the root path
func (h *HealthController) Banner(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Student placement records API",
		Timestamp: time.Now(),
	})
}

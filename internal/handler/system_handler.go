package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/database"
	"github.com/educonnect/educonnect-backend/internal/response"
)

// SystemHandler serves liveness information.
type SystemHandler struct {
	checker   database.Pinger
	startTime time.Time
	log       zerolog.Logger
}

func NewSystemHandler(checker database.Pinger, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		checker:   checker,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// 200 when PostgreSQL and Redis answer, 503 otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	uptime := time.Since(h.startTime).Truncate(time.Second).String()

	if h.checker != nil {
		if err := h.checker.Ping(c.Request.Context()); err != nil {
			h.log.Warn().Err(err).Msg("health check failed")
			response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":     "ok",
		"uptime":     uptime,
		"goroutines": runtime.NumGoroutine(),
	})
}

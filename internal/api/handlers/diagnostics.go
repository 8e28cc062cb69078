package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/orderparser/internal/api/dto"
	"github.com/eshaffer321/orderparser/internal/application/service"
	"github.com/eshaffer321/orderparser/internal/infrastructure/config"
)

// DiagnosticsConfig describes the running configuration shown by the
// diagnostics endpoint.
type DiagnosticsConfig struct {
	Provider    string
	Model       string
	HistoryPath string
	// EnvKeys are the credential variables whose presence is reported.
	EnvKeys []string
}

// DiagnosticsHandler reports credential presence without exposing values.
type DiagnosticsHandler struct {
	svc *service.OrderService
	cfg DiagnosticsConfig
}

// NewDiagnosticsHandler creates a new diagnostics handler.
func NewDiagnosticsHandler(svc *service.OrderService, cfg DiagnosticsConfig) *DiagnosticsHandler {
	if len(cfg.EnvKeys) == 0 {
		cfg.EnvKeys = config.CredentialEnvKeys()
	}
	return &DiagnosticsHandler{svc: svc, cfg: cfg}
}

// Get handles GET /api/diagnostics.
func (h *DiagnosticsHandler) Get(c *gin.Context) {
	seen := make(map[string]bool, len(h.cfg.EnvKeys))
	for _, key := range h.cfg.EnvKeys {
		seen[key] = os.Getenv(key) != ""
	}

	c.JSON(http.StatusOK, dto.DiagnosticsResponse{
		Provider:        h.cfg.Provider,
		Model:           h.cfg.Model,
		ExtractorReady:  h.svc.ExtractorReady(),
		CredentialsSeen: seen,
		HistoryPath:     h.cfg.HistoryPath,
		CheckedAt:       time.Now().UTC().Format(time.RFC3339),
	})
}

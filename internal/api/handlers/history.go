package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/orderparser/internal/api/dto"
	"github.com/eshaffer321/orderparser/internal/application/service"
	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// HistoryHandler serves the persisted runs.
type HistoryHandler struct {
	*Base
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc *service.OrderService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{Base: NewBase(svc, logger)}
}

// List handles GET /api/history. An unreadable store yields an empty list.
// ?view=summary returns titles and counts instead of full runs.
func (h *HistoryHandler) List(c *gin.Context) {
	history, err := h.svc.ListHistory(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read history", "error", err)
		history = []orders.HistoryItem{}
	}

	if c.Query("view") == "summary" {
		summaries := make([]dto.HistorySummaryResponse, 0, len(history))
		for _, item := range history {
			summaries = append(summaries, dto.HistorySummaryResponse{
				ID:        item.ID,
				Timestamp: item.Timestamp,
				Title:     item.Title(),
				Summary:   item.Summary(),
			})
		}
		c.JSON(http.StatusOK, summaries)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Get handles GET /api/history/:id.
func (h *HistoryHandler) Get(c *gin.Context) {
	item, err := h.svc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/history.
func (h *HistoryHandler) Create(c *gin.Context) {
	var item orders.HistoryItem
	if err := c.ShouldBindJSON(&item); err != nil || item.ID == "" {
		h.WriteError(c, http.StatusBadRequest, dto.MissingDataError())
		return
	}

	if err := h.svc.SaveRun(c.Request.Context(), item); err != nil {
		h.WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Update handles PUT /api/history/:id with body {result}.
func (h *HistoryHandler) Update(c *gin.Context) {
	var req dto.UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Result == nil {
		h.WriteError(c, http.StatusBadRequest, dto.MissingDataError())
		return
	}

	if err := h.svc.ReplaceResult(c.Request.Context(), c.Param("id"), *req.Result); err != nil {
		h.WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ChangeLog handles GET /api/history/:id/changelog, newest entries first.
func (h *HistoryHandler) ChangeLog(c *gin.Context) {
	item, err := h.svc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.WriteServiceError(c, err)
		return
	}

	entries := orders.SortedChangeLog(item.Result.ChangeLog)
	response := make([]dto.ChangeLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.ChangeLogEntryResponse{
			ChangeLogEntry: e,
			FieldLabel:     orders.FieldLabel(e.Field),
			Time:           orders.FormatLogTime(e.Timestamp),
		})
	}
	c.JSON(http.StatusOK, response)
}

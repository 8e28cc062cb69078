package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/orderparser/internal/api/dto"
	"github.com/eshaffer321/orderparser/internal/application/service"
	"github.com/eshaffer321/orderparser/internal/domain/orders"
	"github.com/eshaffer321/orderparser/internal/extractor"
)

// RunsHandler creates and edits runs.
type RunsHandler struct {
	*Base
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(svc *service.OrderService, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{Base: NewBase(svc, logger)}
}

// Parse handles POST /api/parse: extracts orders from {text} and saves the run.
func (h *RunsHandler) Parse(c *gin.Context) {
	var req dto.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	item, err := h.svc.Process(c.Request.Context(), req.Text)
	if err != nil {
		h.writeParseError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// writeParseError surfaces extraction failures to the operator with the
// provider's message.
func (h *RunsHandler) writeParseError(c *gin.Context, err error) {
	var extractErr *extractor.ExtractionError
	if errors.As(err, &extractErr) {
		_ = c.Error(err)
		h.WriteError(c, http.StatusBadGateway, dto.NewAPIError(dto.ErrCodeExtraction, extractErr.Error()))
		return
	}
	h.WriteServiceError(c, err)
}

// Edit handles POST /api/history/:id/edits.
func (h *RunsHandler) Edit(c *gin.Context) {
	var req dto.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RowID == "" || req.Field == "" {
		h.WriteError(c, http.StatusBadRequest, dto.ValidationError("rowId and field are required"))
		return
	}

	res, err := h.svc.EditRun(c.Request.Context(), c.Param("id"), orders.Edit{
		RowID: req.RowID,
		Field: req.Field,
		Value: req.Value,
	})
	if err != nil {
		h.WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

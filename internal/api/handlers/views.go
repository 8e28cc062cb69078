package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/orderparser/internal/api/dto"
	"github.com/eshaffer321/orderparser/internal/application/service"
	"github.com/eshaffer321/orderparser/internal/domain/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ViewsHandler serves the derived tables of a run.
type ViewsHandler struct {
	*Base
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(svc *service.OrderService, logger *slog.Logger) *ViewsHandler {
	return &ViewsHandler{Base: NewBase(svc, logger)}
}

// Orders handles GET /api/history/:id/orders, rows in default sort order.
func (h *ViewsHandler) Orders(c *gin.Context) {
	rows, err := h.svc.SortedOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRowsResponse(rows))
}

// Australia handles GET /api/history/:id/au.
func (h *ViewsHandler) Australia(c *gin.Context) {
	rows, err := h.svc.AustraliaView(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRowsResponse(rows))
}

// Birmingham handles POST /api/history/:id/bham with body {ids}.
func (h *ViewsHandler) Birmingham(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	rows, err := h.svc.BirminghamView(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		h.WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRowsResponse(rows))
}

// Export handles GET /api/history/:id/export?layout=&format=&ids=.
func (h *ViewsHandler) Export(c *gin.Context) {
	layout, err := export.ParseLayout(c.DefaultQuery("layout", string(export.LayoutDefault)))
	if err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	id := c.Param("id")
	table, err := h.svc.Export(c.Request.Context(), id, layout, ParseIDList(c.Query("ids")))
	if err != nil {
		h.WriteServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("orders-%s-%s", layout, h.svc.Now().Format("20060102"))
	switch c.DefaultQuery("format", "tsv") {
	case "tsv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".tsv"))
		c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", []byte(table.TSV()))
	case "xlsx":
		data, err := table.XLSX(layout)
		if err != nil {
			h.WriteServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		c.Data(http.StatusOK, xlsxContentType, data)
	default:
		h.WriteError(c, http.StatusBadRequest, dto.ValidationError("format must be tsv or xlsx"))
	}
}

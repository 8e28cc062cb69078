package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/orderparser/internal/api/dto"
	"github.com/eshaffer321/orderparser/internal/application/service"
	"github.com/eshaffer321/orderparser/internal/domain/orders"
	"github.com/eshaffer321/orderparser/internal/extractor"
	"github.com/eshaffer321/orderparser/internal/infrastructure/storage"
)

// Base provides shared functionality for all handlers.
type Base struct {
	svc    *service.OrderService
	logger *slog.Logger
}

// NewBase creates a new base handler around the order service.
func NewBase(svc *service.OrderService, logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{svc: svc, logger: logger}
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(c *gin.Context, status int, err dto.APIError) {
	c.AbortWithStatusJSON(status, err)
}

// WriteServiceError maps a service error to a status code and API error.
func (b *Base) WriteServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case service.IsNotFound(err):
		b.WriteError(c, http.StatusNotFound, dto.NotFoundError())
	case errors.Is(err, storage.ErrInvalidItem):
		b.WriteError(c, http.StatusBadRequest, dto.MissingDataError())
	case errors.Is(err, extractor.ErrEmptyInput):
		b.WriteError(c, http.StatusBadRequest, dto.BadRequestError(err.Error()))
	case errors.Is(err, extractor.ErrMissingAPIKey):
		b.WriteError(c, http.StatusServiceUnavailable, dto.NewAPIError(dto.ErrCodeMissingCredentials, extractor.ErrMissingAPIKey.Error()))
	case errors.Is(err, orders.ErrUnknownField), errors.Is(err, orders.ErrInvalidValue),
		errors.Is(err, orders.ErrDuplicateRowID):
		b.WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
	default:
		b.logger.Error("request failed", "path", c.FullPath(), "error", err)
		b.WriteError(c, http.StatusInternalServerError, dto.InternalError())
	}
}

// ParseIDList splits a comma-separated id list, dropping blanks.
func ParseIDList(val string) []string {
	var ids []string
	for _, id := range strings.Split(val, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

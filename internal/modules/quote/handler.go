package quote

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"secrethouse/internal/pkg/response"
	"secrethouse/internal/pricing"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", h.quote)
	rg.GET("/tariffs", h.tariffs)
}

func (h *Handler) quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q, err := h.service.Quote(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadDate):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUnknownTariff), errors.Is(err, pricing.ErrRateNotFound):
			response.Error(c, http.StatusNotFound, "RATE_NOT_FOUND", err.Error())
		case errors.Is(err, pricing.ErrNoMultiDayRate):
			response.Error(c, http.StatusNotFound, "NO_MULTI_DAY_RATE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, q)
}

func (h *Handler) tariffs(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Tariffs())
}

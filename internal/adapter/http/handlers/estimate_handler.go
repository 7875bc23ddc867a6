package handlers

import (
	"errors"
	"log"
	"net/http"

	request "quote_calculator/internal/adapter/http/dto/request"
	response "quote_calculator/internal/adapter/http/dto/response"
	"quote_calculator/internal/usecase"
	"quote_calculator/pkg"

	"github.com/gin-gonic/gin"
)

// EstimateHandler serves estimate reads, deletion and stateless pricing.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// ListEstimates returns summaries, most recently updated first.
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSummaries(list))
}

// GetEstimate returns the internal view, totals included.
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	view, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateView(view))
}

func (h *EstimateHandler) GetClientEstimate(c *gin.Context) {
	view, err := h.usecase.ClientView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClientEstimate(view))
}

func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, mapEstimateError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EstimateHandler) Calculate(c *gin.Context) {
	var payload request.CalculateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	b, err := h.usecase.Calculate(c.Request.Context(), usecase.CalculateInput{
		Services: payload.Items(),
		Pricing:  payload.Settings(),
		Pax:      payload.Pax,
	})
	if err != nil {
		respondError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBreakdown(b))
}

func mapEstimateError(err error) *pkg.AppError {
	if appErr, ok := mapDomainError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	default:
		log.Printf("[estimate][handler] unexpected error err=%v", err)
		return internalError(err)
	}
}

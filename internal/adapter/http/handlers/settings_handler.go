package handlers

import (
	"log"
	"net/http"

	response "quote_calculator/internal/adapter/http/dto/response"
	"quote_calculator/internal/usecase"
	"quote_calculator/pkg"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	usecase usecase.ISettingsUseCase
}

func NewSettingsHandler(uc usecase.ISettingsUseCase) *SettingsHandler {
	return &SettingsHandler{usecase: uc}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	data, err := h.usecase.Get(c.Request.Context())
	if err != nil {
		respondError(c, mapSettingsError(err))
		return
	}
	c.JSON(http.StatusOK, response.SettingsResponse{Success: true, Data: data})
}

// SaveSettings replaces the stored settings with the request body.
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		respondError(c, errInvalidPayload)
		return
	}
	if err := h.usecase.Put(c.Request.Context(), raw); err != nil {
		respondError(c, mapSettingsError(err))
		return
	}
	c.JSON(http.StatusOK, response.SettingsResponse{Success: true})
}

func mapSettingsError(err error) *pkg.AppError {
	if appErr, ok := mapDomainError(err); ok {
		return appErr
	}
	log.Printf("[settings][handler] unexpected error err=%v", err)
	return internalError(err)
}

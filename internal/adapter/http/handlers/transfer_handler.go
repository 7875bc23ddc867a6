package handlers

import (
	"log"
	"net/http"

	response "quote_calculator/internal/adapter/http/dto/response"
	"quote_calculator/internal/usecase"
	"quote_calculator/pkg"

	"github.com/gin-gonic/gin"
)

// TransferHandler moves all data in and out as one JSON document.
type TransferHandler struct {
	usecase usecase.ITransferUseCase
}

func NewTransferHandler(uc usecase.ITransferUseCase) *TransferHandler {
	return &TransferHandler{usecase: uc}
}

func (h *TransferHandler) ExportAll(c *gin.Context) {
	payload, err := h.usecase.Export(c.Request.Context())
	if err != nil {
		respondError(c, mapTransferError(err))
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ImportAll applies the payload entirely or not at all. Per-record
// failures are returned in details.
func (h *TransferHandler) ImportAll(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		respondError(c, errInvalidPayload)
		return
	}
	res, err := h.usecase.Import(c.Request.Context(), raw)
	if err != nil {
		respondError(c, mapTransferError(err))
		return
	}
	c.JSON(http.StatusOK, response.ImportResponse{Success: true, Result: res})
}

func mapTransferError(err error) *pkg.AppError {
	if appErr, ok := mapDomainError(err); ok {
		return appErr
	}
	log.Printf("[transfer][handler] unexpected error err=%v", err)
	return internalError(err)
}

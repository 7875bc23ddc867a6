package handlers

import (
	"errors"
	"log"
	"net/http"

	request "quote_calculator/internal/adapter/http/dto/request"
	response "quote_calculator/internal/adapter/http/dto/response"
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase"
	"quote_calculator/pkg"

	"github.com/gin-gonic/gin"
)

// SaveHandler exposes the prepare / commit / rollback save protocol and
// debounced autosave.
type SaveHandler struct {
	usecase usecase.ISaveTransactionUseCase
}

func NewSaveHandler(uc usecase.ISaveTransactionUseCase) *SaveHandler {
	return &SaveHandler{usecase: uc}
}

// Prepare validates and prices the body and reserves the estimate. The
// returned transaction_id must be committed or rolled back.
func (h *SaveHandler) Prepare(c *gin.Context) {
	estimate, ok := bindEstimate(c)
	if !ok {
		return
	}
	res, err := h.usecase.Prepare(c.Request.Context(), estimate)
	if err != nil {
		respondError(c, mapSaveError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrepare(res))
}

func (h *SaveHandler) Commit(c *gin.Context) {
	var payload request.TransactionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}
	res, err := h.usecase.Commit(c.Request.Context(), payload.TransactionID)
	if err != nil {
		respondError(c, mapSaveError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCommit(res))
}

// Rollback is always confirmed, whether or not the transaction exists.
func (h *SaveHandler) Rollback(c *gin.Context) {
	var payload request.TransactionRequest
	_ = c.ShouldBindJSON(&payload)
	res := h.usecase.Rollback(c.Request.Context(), payload.TransactionID)
	c.JSON(http.StatusOK, response.FromRollback(res))
}

// SaveBatch stores every item of the body or none of them.
func (h *SaveHandler) SaveBatch(c *gin.Context) {
	var payload request.BatchSaveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}
	candidates, err := payload.ToEntities()
	if err != nil {
		respondError(c, errInvalidVersion)
		return
	}
	res, err := h.usecase.SaveBatch(c.Request.Context(), candidates)
	if err != nil {
		respondError(c, mapSaveError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBatch(res))
}

// Autosave accepts the body and saves it once edits stop arriving.
func (h *SaveHandler) Autosave(c *gin.Context) {
	estimate, ok := bindEstimate(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.usecase.Autosave(c.Request.Context(), id, estimate); err != nil {
		respondError(c, mapSaveError(err))
		return
	}
	c.JSON(http.StatusAccepted, response.AutosaveResponse{EstimateID: id, Status: "scheduled"})
}

func bindEstimate(c *gin.Context) (entities.Estimate, bool) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return entities.Estimate{}, false
	}
	estimate, err := payload.ToEntity()
	if err != nil {
		respondError(c, errInvalidVersion)
		return entities.Estimate{}, false
	}
	return estimate, true
}

func mapSaveError(err error) *pkg.AppError {
	if appErr, ok := mapDomainError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, entities.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Transaction not found or expired", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBackupNotFound):
		return pkg.NewDomainErrorSimple("BACKUP_NOT_FOUND", "Backup not found", http.StatusNotFound)
	default:
		log.Printf("[save][handler] unexpected error err=%v", err)
		return internalError(err)
	}
}

package handlers

import (
	"net/http"

	response "quote_calculator/internal/adapter/http/dto/response"
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	backups usecase.IBackupUseCase
	saves   usecase.ISaveTransactionUseCase
}

func NewBackupHandler(backups usecase.IBackupUseCase, saves usecase.ISaveTransactionUseCase) *BackupHandler {
	return &BackupHandler{backups: backups, saves: saves}
}

// ListBackups returns the snapshots of one estimate, oldest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	id := c.Param("id")
	list, err := h.backups.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapSaveError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBackups(id, list))
}

// RestoreBackup commits a snapshot body as the next version.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	v, err := entities.ParseVersion(c.Param("version"))
	if err != nil || v.IsZero() {
		respondError(c, errInvalidVersion)
		return
	}
	res, err := h.saves.Restore(c.Request.Context(), c.Param("id"), v)
	if err != nil {
		respondError(c, mapSaveError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCommit(res))
}

package routes

import (
	"quote_calculator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
	PathSave      = "/save"
	PathBackups   = "/backups"
	PathSettings  = "/settings"
)

func addEstimateRoutes(
	rg *gin.RouterGroup,
	diskGuard gin.HandlerFunc,
	estimateHandler *handlers.EstimateHandler,
	saveHandler *handlers.SaveHandler,
	backupHandler *handlers.BackupHandler,
	transferHandler *handlers.TransferHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	save := rg.Group(PathSave)
	{
		save.POST("/prepare", diskGuard, saveHandler.Prepare)
		save.POST("/commit", diskGuard, saveHandler.Commit)
		save.POST("/rollback", saveHandler.Rollback)
	}

	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.POST("/batch", diskGuard, saveHandler.SaveBatch)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.GET("/:id/client", estimateHandler.GetClientEstimate)
		estimates.DELETE("/:id", diskGuard, estimateHandler.DeleteEstimate)
		estimates.POST("/:id/autosave", diskGuard, saveHandler.Autosave)
	}

	backups := rg.Group(PathBackups)
	{
		backups.GET("/:id", backupHandler.ListBackups)
		backups.POST("/:id/restore/:version", diskGuard, backupHandler.RestoreBackup)
	}

	// rollback and pricing never write, so they stay available on a full disk
	rg.POST("/pricing/calculate", estimateHandler.Calculate)
	rg.GET("/export/all", transferHandler.ExportAll)
	rg.POST("/import/all", diskGuard, transferHandler.ImportAll)
	rg.GET(PathSettings, settingsHandler.GetSettings)
	rg.POST(PathSettings, diskGuard, settingsHandler.SaveSettings)
}

package middleware

import (
	"errors"
	"net/http"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase"

	"github.com/gin-gonic/gin"
)

// DiskSpaceResponse is the 507 body returned before a mutating request
// reaches its handler.
type DiskSpaceResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	FreeSpaceMB uint64 `json:"freeSpaceMB"`
	RequiredMB  uint64 `json:"requiredMB"`
}

// DiskSpace refuses POST, PUT, PATCH and DELETE while the data volume is
// below the guard's minimum. Reads always pass.
func DiskSpace(guard usecase.IDiskGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		err := guard.Check(c.Request.Context())
		var se *entities.InsufficientStorageError
		if errors.As(err, &se) {
			c.AbortWithStatusJSON(http.StatusInsufficientStorage, DiskSpaceResponse{
				Error:       "Insufficient disk space",
				FreeSpaceMB: se.FreeBytes / (1024 * 1024),
				RequiredMB:  se.MinFreeBytes / (1024 * 1024),
			})
			return
		}
		c.Next()
	}
}

package handlers

import (
	"errors"
	"net/http"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid request payload", http.StatusBadRequest)
	errInvalidVersion = pkg.NewDomainErrorSimple("INVALID_VERSION", "Version must be major.minor.patch", http.StatusBadRequest)
)

type storageDetails struct {
	FreeSpaceMB uint64 `json:"freeSpaceMB"`
	RequiredMB  uint64 `json:"requiredMB"`
}

// mapDomainError covers the errors every operation can return. ok is false
// for errors the caller maps itself.
func mapDomainError(err error) (appErr *pkg.AppError, ok bool) {
	var berr *entities.BatchError
	if errors.As(err, &berr) {
		inner, known := mapDomainError(berr.Cause)
		if !known {
			inner = internalError(berr.Cause)
		}
		return inner.WithDetails(berr.Records), true
	}

	var (
		verr *entities.ValidationError
		serr *entities.ImportSchemaError
		cerr *entities.ImportConflictError
		derr *entities.InsufficientStorageError
	)
	switch {
	case errors.As(err, &verr):
		return pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Validation failed", http.StatusUnprocessableEntity).WithDetails(verr.Fields), true
	case errors.As(err, &serr):
		return pkg.NewDomainErrorSimple("IMPORT_INVALID", "Import payload rejected", http.StatusUnprocessableEntity).WithDetails(serr.Records), true
	case errors.As(err, &cerr):
		return pkg.NewDomainErrorSimple("IMPORT_CONFLICT", "Import conflicts with stored versions", http.StatusConflict).WithDetails(cerr.Records), true
	case errors.As(err, &derr):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_STORAGE", "Insufficient disk space", http.StatusInsufficientStorage).
			WithDetails(storageDetails{FreeSpaceMB: derr.FreeBytes / (1024 * 1024), RequiredMB: derr.MinFreeBytes / (1024 * 1024)}), true
	case errors.Is(err, entities.ErrInsufficientStorage):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_STORAGE", "Insufficient disk space", http.StatusInsufficientStorage), true
	case errors.Is(err, entities.ErrConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Estimate was changed by someone else; reload and retry", http.StatusConflict), true
	case errors.Is(err, entities.ErrTimeout):
		return pkg.NewDomainErrorSimple("TIMEOUT", "Operation timed out; retry later", http.StatusServiceUnavailable), true
	}
	return nil, false
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// internal/handlers/common.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/retailnet/ordering-backend/internal/services"
	"github.com/retailnet/ordering-backend/internal/utils"
)

// serviceError maps service sentinels onto the HTTP error taxonomy:
// conflicts, missing rows and ownership failures each get their own status,
// validation problems stay 400, everything else is a server fault.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, 404, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	case strings.Contains(err.Error(), "validation failed"):
		utils.BadRequestResponse(c, err.Error(), nil)
	case strings.Contains(err.Error(), "database error"),
		strings.Contains(err.Error(), "failed to"):
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

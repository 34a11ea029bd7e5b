package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/logger"
)

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.BadInput, apperr.Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error onto the wire. Unclassified errors are
// logged with their cause and surfaced as a generic message.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)

	if kind == apperr.Internal {
		logger.Error(logger.EventGeneral, "Request failed", logger.Fields(
			"path", c.FullPath(),
			"requestId", c.GetString("requestId"),
			"error", err.Error(),
		))
	}

	c.JSON(statusForKind(kind), gin.H{
		"error": apperr.MessageOf(err),
		"code":  kind.Code(),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
		"code":  apperr.BadInput.Code(),
	})
}

package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Unauthorized writes the fixed 401 payload and aborts the request.
func Unauthorized(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// InvalidBody reports a payload that could not be decoded at all.
func InvalidBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

// ValidationFailed reports the complete set of field violations at once.
func ValidationFailed(ctx *gin.Context, details []FieldError) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
}

// BindFailure maps a ShouldBindJSON error to either a field-addressable
// validation response or a generic malformed-body response.
func BindFailure(ctx *gin.Context, err error) {
	if details, ok := Violations(err); ok {
		ValidationFailed(ctx, details)
		return
	}
	InvalidBody(ctx)
}

// NotFound reports a missing entity, e.g. {"error": "Project not found"}.
func NotFound(ctx *gin.Context, entity string) {
	ctx.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
}

// ServerError logs the underlying cause and returns the generic per-action
// message; internal detail never reaches the client.
func ServerError(ctx *gin.Context, action string, err error) {
	if Sugar != nil {
		Sugar.Errorw("storage failure", "action", action, "path", ctx.FullPath(), "error", err)
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}

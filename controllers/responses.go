package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Kariqs/mobistore-api/middlewares"
	"github.com/Kariqs/mobistore-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgAuthRequired        = "Authentication required"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message, code string) {
	sendJSONResponse(ctx, status, gin.H{"message": message, "code": code})
}

// respondWithError translates a service error into its HTTP status. Internal
// failures were already logged by the service and are not echoed back.
func respondWithError(ctx *gin.Context, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = msgInternalServerError
	}
	sendErrorResponse(ctx, status, message, code)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden, "unauthorized"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusGone, "unavailable"
	case errors.Is(err, services.ErrStorage):
		return http.StatusBadGateway, "storage_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func badRequest(ctx *gin.Context, message string) {
	sendErrorResponse(ctx, http.StatusBadRequest, message, "invalid_input")
}

// currentUser returns the caller set by the auth middleware, answering 401
// itself when there is none.
func currentUser(ctx *gin.Context) (*services.Identity, bool) {
	identity, ok := middlewares.CurrentIdentity(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgAuthRequired, "unauthenticated")
		return nil, false
	}
	return identity, true
}

func idParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(ctx, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryList collects a repeated query parameter, also splitting
// comma-separated values and dropping blanks.
func queryList(ctx *gin.Context, key string) []string {
	var out []string
	for _, raw := range ctx.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

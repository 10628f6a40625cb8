package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CaioSouzalimaa/clearbalance/internal/application"
	"github.com/CaioSouzalimaa/clearbalance/pkg/response"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

// writeServiceError maps application errors onto the HTTP contract:
// 400 with a field map for structural validation, 409 for conflicts,
// 404 for missing resources, 401 for bad credentials, opaque 500 otherwise.
func writeServiceError(c *gin.Context, err error) {
	if ve, ok := validation.IsError(err); ok {
		response.Error[any](c, http.StatusBadRequest, "invalid input", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already in use", nil)
	case errors.Is(err, application.ErrCategoryNameTaken):
		response.Error[any](c, http.StatusConflict, "category name already in use", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrCategoryNotFound),
		errors.Is(err, application.ErrTransactionNotFound),
		errors.Is(err, application.ErrGoalNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	default:
		// Do not leak storage details to the client.
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

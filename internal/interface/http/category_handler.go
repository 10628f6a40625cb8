package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/internal/application"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	"github.com/CaioSouzalimaa/clearbalance/pkg/response"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

func categoryView(cat *entity.Category) gin.H {
	return gin.H{
		"id":         cat.ID,
		"name":       cat.Name,
		"icon":       cat.Icon,
		"created_at": cat.CreatedAt,
		"updated_at": cat.UpdatedAt,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, cat := range list {
		out = append(out, categoryView(cat))
	}
	response.Success(c, http.StatusOK, out, "categories", nil)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req application.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, categoryView(cat), "category created", nil)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req application.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category updated", nil)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "category deleted", nil)
}

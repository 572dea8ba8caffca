package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// RegisterRoutes registers the category routes: list and create only,
// deletion by slug.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	categories := rg.Group("/categories")

	categories.GET("", h.List)
	categories.POST("", auth, middleware.RequireAdmin(), h.Create)
	categories.DELETE("/:slug", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	list, total, err := h.svc.GetAll(ctx, search, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		resp = append(resp, dto.FromModelToCategoryResponse(cat))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       resp,
		"pagination": paginationEnvelope(page, pageSize, total),
	})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category := in.ToModel()
	if err := h.svc.Create(ctx, &category); err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCategoryResponse(category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

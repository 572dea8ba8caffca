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

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// RegisterRoutes registers the genre routes: list and create only, deletion
// by slug. There is no retrieve-by-id and no update.
func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	genres := rg.Group("/genres")

	genres.GET("", h.List)
	genres.POST("", auth, middleware.RequireAdmin(), h.Create)
	genres.DELETE("/:slug", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *GenreHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	list, total, err := h.svc.GetAll(ctx, search, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.FromModelToGenreResponse(g))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       resp,
		"pagination": paginationEnvelope(page, pageSize, total),
	})
}

func (h *GenreHandler) Create(c *gin.Context) {
	var in dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	genre := in.ToModel()
	if err := h.svc.Create(ctx, &genre); err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "genre slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToGenreResponse(genre))
}

func (h *GenreHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "genre not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/service"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// RegisterRoutes registers the title routes. Reads are open to anyone;
// writes go through auth plus the admin gate.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	titles := rg.Group("/titles")

	titles.GET("", h.List)
	titles.GET("/:title_id", h.Get)

	titles.POST("", auth, middleware.RequireAdmin(), h.Create)
	titles.PATCH("/:title_id", auth, middleware.RequireAdmin(), h.Update)
	titles.DELETE("/:title_id", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *TitleHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)

	var filters dto.TitleFilters
	filters.Category = strings.TrimSpace(c.Query("category"))
	filters.Genre = strings.TrimSpace(c.Query("genre"))
	filters.Name = strings.TrimSpace(c.Query("name"))
	if yearStr := strings.TrimSpace(c.Query("year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year parameter"})
			return
		}
		filters.Year = &year
	}

	list, total, err := h.svc.GetAll(ctx, filters, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.TitleResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, dto.FromModelToTitleResponse(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       resp,
		"pagination": paginationEnvelope(page, pageSize, total),
	})
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	t, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(*t))
}

func (h *TitleHandler) Create(c *gin.Context) {
	var in dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	t, err := h.svc.Create(ctx, in)
	if err != nil {
		if isTitleValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(*t))
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	t, err := h.svc.Update(ctx, id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		case isTitleValidationErr(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(*t))
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func isTitleValidationErr(err error) bool {
	return errors.Is(err, service.ErrYearInFuture) ||
		errors.Is(err, service.ErrUnknownGenre) ||
		errors.Is(err, service.ErrUnknownCategory)
}

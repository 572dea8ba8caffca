package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/permissions"
	"titlehub/internal/http-api/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes registers review routes nested under a title. Reads are
// open; create needs authentication; update/delete are checked per object
// after the fetch.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	reviews := rg.Group("/titles/:title_id/reviews")

	reviews.GET("", h.List)
	reviews.GET("/:review_id", h.Get)

	reviews.POST("", auth, h.Create)
	reviews.PATCH("/:review_id", auth, h.Update)
	reviews.DELETE("/:review_id", auth, h.Delete)
}

func reviewPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, 0, false
	}
	if idStr := c.Param("review_id"); idStr != "" {
		reviewID, err = strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
			return 0, 0, false
		}
	}
	return titleID, reviewID, true
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, _, ok := reviewPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)
	reviews, total, err := h.svc.GetByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.FromModelToReviewResponse(&reviews[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       resp,
		"pagination": paginationEnvelope(page, pageSize, total),
	})
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, _, ok := reviewPath(c)
	if !ok {
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// author comes from the token, never from the payload
	identity := middleware.CurrentIdentity(c)
	review, err := h.svc.Create(ctx, titleID, identity.UserID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		case errors.Is(err, service.ErrReviewExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var in dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !permissions.CanEditContent(middleware.CurrentIdentity(c), review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	updated, err := h.svc.Update(ctx, titleID, reviewID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(updated))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !permissions.CanEditContent(middleware.CurrentIdentity(c), review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	if err := h.svc.Delete(ctx, titleID, reviewID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

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

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes registers comment routes nested under a review, itself
// nested under a title. Same access pattern as reviews.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	comments := rg.Group("/titles/:title_id/reviews/:review_id/comments")

	comments.GET("", h.List)
	comments.GET("/:comment_id", h.Get)

	comments.POST("", auth, h.Create)
	comments.PATCH("/:comment_id", auth, h.Update)
	comments.DELETE("/:comment_id", auth, h.Delete)
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID int64, ok bool) {
	var err error
	titleID, err = strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, 0, 0, false
	}
	reviewID, err = strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, 0, 0, false
	}
	if idStr := c.Param("comment_id"); idStr != "" {
		commentID, err = strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
			return 0, 0, 0, false
		}
	}
	return titleID, reviewID, commentID, true
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, _, ok := commentPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)
	comments, total, err := h.svc.GetByReview(ctx, titleID, reviewID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, dto.FromModelToCommentResponse(&comments[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       resp,
		"pagination": paginationEnvelope(page, pageSize, total),
	})
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.svc.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, _, ok := commentPath(c)
	if !ok {
		return
	}

	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	identity := middleware.CurrentIdentity(c)
	comment, err := h.svc.Create(ctx, titleID, reviewID, identity.UserID, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.svc.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !permissions.CanEditContent(middleware.CurrentIdentity(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	updated, err := h.svc.Update(ctx, titleID, reviewID, commentID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(updated))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.svc.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !permissions.CanEditContent(middleware.CurrentIdentity(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	if err := h.svc.Delete(ctx, titleID, reviewID, commentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

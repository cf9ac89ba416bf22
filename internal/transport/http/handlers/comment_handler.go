package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AVIDS2/Astris-Blog/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Thread serves the approved comment tree for one post.
func (h *CommentHandler) Thread(c *gin.Context) {
	thread, err := h.comments.ApprovedThread(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// Create accepts a visitor comment. The stored comment always starts
// unapproved; there is no way to publish one from this endpoint.
func (h *CommentHandler) Create(c *gin.Context) {
	var in service.CreateCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListAll serves the moderation queue, optionally filtered by approval state.
func (h *CommentHandler) ListAll(c *gin.Context) {
	var approved *bool
	switch c.Query("approved") {
	case "":
	case "true":
		v := true
		approved = &v
	case "false":
		v := false
		approved = &v
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approved"})
		return
	}
	items, err := h.comments.ListAll(c.Request.Context(), approved)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CommentHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.comments.Approve(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment approved"})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

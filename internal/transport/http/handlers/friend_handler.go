package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AVIDS2/Astris-Blog/internal/service"
)

type FriendHandler struct {
	friends *service.FriendService
}

func NewFriendHandler(friends *service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

func (h *FriendHandler) ListVisible(c *gin.Context) {
	friends, err := h.friends.ListVisible(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *FriendHandler) ListAll(c *gin.Context) {
	friends, err := h.friends.ListAll(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *FriendHandler) Create(c *gin.Context) {
	var in service.FriendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	friend, err := h.friends.Create(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, friend)
}

func (h *FriendHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.FriendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	friend, err := h.friends.Update(c.Request.Context(), id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, friend)
}

func (h *FriendHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.friends.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friend link deleted"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AVIDS2/Astris-Blog/internal/service"
)

type AlbumHandler struct {
	albums *service.AlbumService
}

func NewAlbumHandler(albums *service.AlbumService) *AlbumHandler {
	return &AlbumHandler{albums: albums}
}

func (h *AlbumHandler) ListVisible(c *gin.Context) {
	albums, err := h.albums.ListVisible(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (h *AlbumHandler) ListPhotos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	photos, err := h.albums.ListPhotos(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (h *AlbumHandler) ListAll(c *gin.Context) {
	albums, err := h.albums.ListAll(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (h *AlbumHandler) Create(c *gin.Context) {
	var in service.CreateAlbumInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, err := h.albums.Create(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, album)
}

func (h *AlbumHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.UpdateAlbumInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, err := h.albums.Update(c.Request.Context(), id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.albums.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album deleted"})
}

func (h *AlbumHandler) AddPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.CreatePhotoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.AlbumID = id
	photo, err := h.albums.AddPhoto(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (h *AlbumHandler) UpdatePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.UpdatePhotoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo, err := h.albums.UpdatePhoto(c.Request.Context(), id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (h *AlbumHandler) DeletePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.albums.DeletePhoto(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}

package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/AVIDS2/Astris-Blog/internal/service"
	"github.com/AVIDS2/Astris-Blog/internal/storage"
)

type BannerHandler struct {
	banners *service.BannerService
	store   storage.FileStore
}

func NewBannerHandler(banners *service.BannerService, store storage.FileStore) *BannerHandler {
	return &BannerHandler{banners: banners, store: store}
}

func (h *BannerHandler) List(c *gin.Context) {
	list, err := h.banners.List()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BannerHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()
	if err := h.banners.Upload(c.Param("device"), file.Filename, src); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "banner uploaded"})
}

func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.banners.Delete(c.Param("device"), c.Param("filename")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
}

// UploadImage stores an editor image under a random name and returns its
// public URL.
func (h *BannerHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()
	url, err := service.SaveUpload(h.store, filepath.Ext(file.Filename), src)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"skillboard_backend/internal/repositories"
	"skillboard_backend/internal/storage"
	"skillboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	storage       storage.Storage
	portfolioRepo repositories.PortfolioRepository
}

func NewFileHandler(base *BaseHandler, storageInstance storage.Storage, portfolioRepo repositories.PortfolioRepository) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		storage:       storageInstance,
		portfolioRepo: portfolioRepo,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/:uploadId", h.ServeFile)
		files.HEAD("/:uploadId", h.CheckFileExists)
	}
}

// ServeFile streams a stored portfolio file by upload ID. Portfolio files
// are public once the owning profile is.
func (h *FileHandler) ServeFile(c *gin.Context) {
	uploadID := c.Param("uploadId")

	upload, err := h.portfolioRepo.FindUploadByID(h.GetDB(c), uploadID)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), upload.Path)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found in storage"))
		return
	}
	defer reader.Close()

	c.Header("Content-Type", upload.MimeType)
	c.Header("Content-Length", strconv.FormatInt(upload.Size, 10))
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("ETag", fmt.Sprintf(`"%s"`, upload.ID))

	if c.Query("download") == "true" {
		filename := filepath.Base(upload.Path)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	} else {
		c.Header("Content-Disposition", "inline")
	}

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already sent; nothing to answer with.
		c.Error(err)
	}
}

// CheckFileExists answers HEAD requests without a body.
func (h *FileHandler) CheckFileExists(c *gin.Context) {
	uploadID := c.Param("uploadId")

	upload, err := h.portfolioRepo.FindUploadByID(h.GetDB(c), uploadID)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), upload.Path)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", upload.MimeType)
	c.Header("Content-Length", strconv.FormatInt(upload.Size, 10))
	c.Header("ETag", fmt.Sprintf(`"%s"`, upload.ID))
	c.Status(http.StatusOK)
}

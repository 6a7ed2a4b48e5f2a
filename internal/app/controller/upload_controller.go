package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	apperrors "github.com/makeey/notsofluffy.pl-sub000/internal/errors"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
	"github.com/makeey/notsofluffy.pl-sub000/internal/storage"
)

// UploadController handles the admin image library: multipart uploads go to
// S3 and each stored file gets an images row the catalog can reference.
type UploadController struct {
	uploader  storage.Uploader
	imageRepo repository.ImageRepository
	maxSize   int64
}

func NewUploadController(uploader storage.Uploader, imageRepo repository.ImageRepository, maxSize int64) *UploadController {
	return &UploadController{
		uploader:  uploader,
		imageRepo: imageRepo,
		maxSize:   maxSize,
	}
}

// Upload accepts a multipart file under the "file" field
// POST /api/admin/images/upload
func (ctrl *UploadController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := storage.ValidateContentType(contentType, storage.AllowedImageTypes); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": contentType,
			"filename":     fileHeader.Filename,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, WEBP, GIF)")
		return
	}
	if err := storage.ValidateFileSize(fileHeader.Size, ctrl.maxSize); err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "File exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	defer file.Close()

	result, err := ctrl.uploader.Upload(c.Request.Context(), "products", fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		log.Error("Failed to upload image to storage", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to store the file")
		return
	}

	image := &model.Image{
		Filename:     result.Key,
		OriginalName: fileHeader.Filename,
		MimeType:     contentType,
		Size:         fileHeader.Size,
		URL:          result.FileURL,
	}
	if err := ctrl.imageRepo.Create(image); err != nil {
		log.Error("Failed to record uploaded image", err, map[string]interface{}{
			"key": result.Key,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Image uploaded", map[string]interface{}{
		"image_id": image.ID,
		"key":      result.Key,
		"size":     image.Size,
	})
	c.JSON(http.StatusCreated, gin.H{"image": image})
}

// List returns the image library
// GET /api/admin/images
func (ctrl *UploadController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	images, total, err := ctrl.imageRepo.List(page, limit, c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, listResponse("images", images, total, page, limit))
}

// Delete removes an image record and its stored file
// DELETE /api/admin/images/:id
func (ctrl *UploadController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid image ID")
		return
	}

	image, err := ctrl.imageRepo.FindByID(id)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "image")
		return
	}

	if err := ctrl.uploader.Delete(c.Request.Context(), image.Filename); err != nil {
		// Keep going: the DB row is the source of truth for the catalog
		middleware.GetLoggerFromContext(c).Warn("Failed to delete stored file", map[string]interface{}{
			"key":   image.Filename,
			"error": err.Error(),
		})
	}
	if err := ctrl.imageRepo.Delete(id); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

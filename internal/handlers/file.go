package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/yukikurage/pastry-manager-api/internal/app"
	apierrors "github.com/yukikurage/pastry-manager-api/internal/errors"
	"github.com/yukikurage/pastry-manager-api/internal/middleware"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/services"
)

// multipart form field carrying the upload
const formFieldFile = "file"

// gin needs one wildcard name per path segment, so ":id" is the file ID
// on single-file routes and the entity type on entity routes.
const (
	paramFileOrEntityType = "id"
	paramEntityID         = "entityId"
)

type FileHandler struct {
	app *app.App
}

func NewFileHandler(a *app.App) *FileHandler {
	return &FileHandler{app: a}
}

// Upload attaches a multipart file to a task request or user
func (h *FileHandler) Upload(c *gin.Context) {
	uploaderID, _ := middleware.GetUserID(c)
	entityType, _ := models.ParseEntityType(c.Param(paramFileOrEntityType))
	entityID, ok := uuidParam(c, paramEntityID)
	if !ok {
		return
	}

	header, err := c.FormFile(formFieldFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.TooLarge(c, "Request body too large")
			return
		}
		apierrors.BadRequest(c, "File is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		_ = c.Error(errors.Wrap(err, "failed to open uploaded file"))
		return
	}
	defer file.Close()

	res, err := h.app.UploadFile(c.Request.Context(), services.UploadFileInput{
		Reader:        file,
		FileName:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		FileSizeBytes: header.Size,
		EntityType:    entityType,
		EntityID:      entityID,
		UploadedBy:    uploaderID,
	})
	render(c, res, err, http.StatusCreated)
}

// ListByEntity returns an entity's attachments without download links
func (h *FileHandler) ListByEntity(c *gin.Context) {
	entityType, _ := models.ParseEntityType(c.Param(paramFileOrEntityType))
	entityID, ok := uuidParam(c, paramEntityID)
	if !ok {
		return
	}

	res, err := h.app.GetFilesByEntity(c.Request.Context(), services.FilesByEntityInput{
		EntityType: entityType,
		EntityID:   entityID,
	})
	render(c, res, err, http.StatusOK)
}

// GetFile returns metadata with a presigned download link
func (h *FileHandler) GetFile(c *gin.Context) {
	fileID, ok := uuidParam(c, paramFileOrEntityType)
	if !ok {
		return
	}

	res, err := h.app.GetFile(c.Request.Context(), services.FileIDInput{FileID: fileID})
	render(c, res, err, http.StatusOK, services.MsgFileNotFound)
}

// DeleteFile soft deletes an attachment
func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileID, ok := uuidParam(c, paramFileOrEntityType)
	if !ok {
		return
	}

	res, err := h.app.DeleteFile(c.Request.Context(), services.FileIDInput{FileID: fileID})
	render(c, res, err, http.StatusNoContent, services.MsgFileNotFound)
}

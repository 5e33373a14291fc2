package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/constants"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/repository"
	"github.com/yukikurage/pastry-manager-api/internal/result"
	"github.com/yukikurage/pastry-manager-api/internal/storage"
	"gorm.io/gorm"
)

// FileService handles file attachments backed by object storage.
type FileService struct {
	fileRepo      repository.FileAttachmentRepository
	userRepo      repository.UserRepository
	taskRepo      repository.TaskRequestRepository
	storage       storage.FileStorage
	presignExpiry time.Duration
	logger        log.FieldLogger

	// in-flight object removals started by Delete
	removals sync.WaitGroup
}

// NewFileService creates a new FileService.
func NewFileService(
	fileRepo repository.FileAttachmentRepository,
	userRepo repository.UserRepository,
	taskRepo repository.TaskRequestRepository,
	fileStorage storage.FileStorage,
	presignExpiry time.Duration,
	logger log.FieldLogger,
) *FileService {
	if presignExpiry <= 0 {
		presignExpiry = constants.DefaultPresignExpiry
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &FileService{
		fileRepo:      fileRepo,
		userRepo:      userRepo,
		taskRepo:      taskRepo,
		storage:       fileStorage,
		presignExpiry: presignExpiry,
		logger:        logger,
	}
}

// UploadFileInput carries an uploaded file and the entity it belongs to.
type UploadFileInput struct {
	Reader        io.Reader
	FileName      string            `validate:"required,max=255" label:"File name"`
	ContentType   string            `validate:"omitempty,max=100" label:"Content type"`
	FileSizeBytes int64             `label:"File size"`
	EntityType    models.EntityType `label:"Entity type"`
	EntityID      uuid.UUID         `validate:"required" label:"Entity ID"`
	UploadedBy    uuid.UUID         `validate:"required" label:"Uploaded by user ID"`
}

func (in UploadFileInput) Validate() []string {
	var messages []string
	if in.Reader == nil {
		messages = append(messages, MsgFileStreamRequired)
	}
	if in.FileSizeBytes <= 0 {
		messages = append(messages, MsgFileEmpty)
	}
	if !in.EntityType.IsValid() {
		messages = append(messages, MsgInvalidEntityType)
	}
	return messages
}

// FileIDInput identifies an attachment.
type FileIDInput struct {
	FileID uuid.UUID `validate:"required" label:"File ID"`
}

// FilesByEntityInput identifies the entity whose attachments are listed.
type FilesByEntityInput struct {
	EntityType models.EntityType `label:"Entity type"`
	EntityID   uuid.UUID         `validate:"required" label:"Entity ID"`
}

func (in FilesByEntityInput) Validate() []string {
	if !in.EntityType.IsValid() {
		return []string{MsgInvalidEntityType}
	}
	return nil
}

// Upload stores the object and records its metadata.
func (s *FileService) Upload(ctx context.Context, input UploadFileInput) (result.Result[dto.FileUploadResultDTO], error) {
	exists, err := s.userRepo.Exists(ctx, input.UploadedBy)
	if err != nil {
		return result.Result[dto.FileUploadResultDTO]{}, errors.Wrap(err, "failed to find uploader")
	}
	if !exists {
		return result.Failure[dto.FileUploadResultDTO](MsgUserNotFound), nil
	}

	exists, err = s.entityExists(ctx, input.EntityType, input.EntityID)
	if err != nil {
		return result.Result[dto.FileUploadResultDTO]{}, err
	}
	if !exists {
		return result.Failure[dto.FileUploadResultDTO](
			fmt.Sprintf("%s with ID %s not found", input.EntityType, input.EntityID)), nil
	}

	if ok, msg := s.storage.Validate(input.FileName, input.FileSizeBytes); !ok {
		return result.Failure[dto.FileUploadResultDTO](msg), nil
	}

	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = DefaultFileContentType
	}

	fileID := uuid.New()
	key, err := s.storage.Upload(ctx, storage.UploadObject{
		Reader:      input.Reader,
		Size:        input.FileSizeBytes,
		FileName:    input.FileName,
		ContentType: contentType,
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		FileID:      fileID,
	})
	if err != nil {
		return result.Failure[dto.FileUploadResultDTO](MsgUploadFailedPrefix + err.Error()), nil
	}

	file := &models.FileAttachment{
		FileName:      input.FileName,
		S3Key:         key,
		ContentType:   contentType,
		FileSizeBytes: input.FileSizeBytes,
		EntityType:    input.EntityType,
		EntityID:      input.EntityID,
		UploadedBy:    input.UploadedBy,
	}
	file.ID = fileID

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Don't leave an object nobody can reference.
		if rmErr := s.storage.Delete(context.WithoutCancel(ctx), key); rmErr != nil {
			s.logger.WithError(rmErr).WithField("key", key).Warn("Failed to remove orphaned object")
		}
		return result.Result[dto.FileUploadResultDTO]{}, errors.Wrap(err, "failed to save file metadata")
	}

	return result.Success(dto.FileUploadResultDTO{
		FileID:        fileID,
		FileName:      input.FileName,
		FileSizeBytes: input.FileSizeBytes,
		Message:       dto.FileUploadedMessage,
	}), nil
}

func (s *FileService) entityExists(ctx context.Context, entityType models.EntityType, id uuid.UUID) (bool, error) {
	var (
		exists bool
		err    error
	)
	switch entityType {
	case models.EntityTypeTaskRequest:
		exists, err = s.taskRepo.Exists(ctx, id)
	case models.EntityTypeUser:
		exists, err = s.userRepo.Exists(ctx, id)
	default:
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to find %s", entityType)
	}
	return exists, nil
}

// Get returns an attachment's metadata with a presigned download link.
func (s *FileService) Get(ctx context.Context, input FileIDInput) (result.Result[dto.FileMetadataDTO], error) {
	file, err := s.fileRepo.FindByID(ctx, input.FileID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[dto.FileMetadataDTO](MsgFileNotFound), nil
		}
		return result.Result[dto.FileMetadataDTO]{}, errors.Wrap(err, "failed to find file")
	}

	url, err := s.storage.PresignedURL(ctx, file.S3Key, s.presignExpiry)
	if err != nil {
		return result.Result[dto.FileMetadataDTO]{}, err
	}

	out := dto.ToFileMetadataDTO(*file)
	out.DownloadURL = &url
	return result.Success(out), nil
}

// ListByEntity lists an entity's attachments, newest first, without links.
func (s *FileService) ListByEntity(ctx context.Context, input FilesByEntityInput) (result.Result[[]dto.FileMetadataDTO], error) {
	files, err := s.fileRepo.ListByEntity(ctx, input.EntityType, input.EntityID)
	if err != nil {
		return result.Result[[]dto.FileMetadataDTO]{}, errors.Wrap(err, "failed to list files")
	}

	out := make([]dto.FileMetadataDTO, 0, len(files))
	for _, f := range files {
		out = append(out, dto.ToFileMetadataDTO(f))
	}
	return result.Success(out), nil
}

// Delete soft deletes the attachment and removes the object in the background.
func (s *FileService) Delete(ctx context.Context, input FileIDInput) (result.Result[Empty], error) {
	file, err := s.fileRepo.FindByID(ctx, input.FileID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[Empty](MsgFileNotFound), nil
		}
		return result.Result[Empty]{}, errors.Wrap(err, "failed to find file")
	}

	if err := s.fileRepo.Delete(ctx, file); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[Empty](MsgFileNotFound), nil
		}
		return result.Result[Empty]{}, errors.Wrap(err, "failed to delete file")
	}

	s.removeObject(ctx, file.S3Key)
	return result.Success(Empty{}), nil
}

// removeObject runs detached from the request; failures are only logged.
func (s *FileService) removeObject(ctx context.Context, key string) {
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ObjectDeleteTimeout)
	s.removals.Add(1)
	go func() {
		defer s.removals.Done()
		defer cancel()
		if err := s.storage.Delete(bg, key); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to delete object from storage")
		}
	}()
}

// Wait blocks until background removals finish or ctx is done.
func (s *FileService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.removals.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

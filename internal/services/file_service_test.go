package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/pipeline"
	"github.com/yukikurage/pastry-manager-api/internal/repository"
	"github.com/yukikurage/pastry-manager-api/internal/storage"
)

// failingFileRepo fails every insert.
type failingFileRepo struct {
	repository.FileAttachmentRepository
}

func (failingFileRepo) Create(context.Context, *models.FileAttachment) error {
	return errBoom
}

func (suite *ServiceTestSuite) uploadInput(uploader uuid.UUID, entityType models.EntityType, entityID uuid.UUID, name, body string) UploadFileInput {
	return UploadFileInput{
		Reader:        content(body),
		FileName:      name,
		ContentType:   "application/pdf",
		FileSizeBytes: int64(len(body)),
		EntityType:    entityType,
		EntityID:      entityID,
		UploadedBy:    uploader,
	}
}

func (suite *ServiceTestSuite) TestUpload_StoresObjectAndMetadata() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	task := suite.createTask("Opera cake", user, user, time.Now())

	res, err := suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeTaskRequest, task.ID, "recipe.pdf", "layers"))
	suite.Require().NoError(err)
	suite.Require().True(res.IsSuccess(), res.Errors)
	suite.Equal("recipe.pdf", res.Data.FileName)
	suite.Equal(int64(6), res.Data.FileSizeBytes)
	suite.Equal("File uploaded successfully", res.Data.Message)

	stored, err := suite.fileRepo.FindByID(suite.ctx, res.Data.FileID, false)
	suite.Require().NoError(err)
	expectedKey := fmt.Sprintf("uploads/taskrequest/%s/%s-recipe.pdf", task.ID, res.Data.FileID)
	suite.Equal(expectedKey, stored.S3Key)
	suite.Equal("application/pdf", stored.ContentType)

	data, ok := suite.storage.object(expectedKey)
	suite.Require().True(ok)
	suite.Equal("layers", string(data))
	meta := suite.storage.metadata[expectedKey]
	suite.Equal("recipe.pdf", meta[storage.MetaOriginalFileName])
	suite.Equal("TaskRequest", meta[storage.MetaEntityType])
	suite.Equal(task.ID.String(), meta[storage.MetaEntityID])
	suite.Equal(res.Data.FileID.String(), meta[storage.MetaFileID])
}

func (suite *ServiceTestSuite) TestUpload_DefaultsContentType() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	input := suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, "avatar.png", "png")
	input.ContentType = ""

	res, err := suite.files.Upload(suite.ctx, input)
	suite.Require().NoError(err)
	suite.Require().True(res.IsSuccess())

	stored, err := suite.fileRepo.FindByID(suite.ctx, res.Data.FileID, false)
	suite.Require().NoError(err)
	suite.Equal(DefaultFileContentType, stored.ContentType)
}

func (suite *ServiceTestSuite) TestUpload_Failures() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	task := suite.createTask("Opera cake", user, user, time.Now())

	res, err := suite.files.Upload(suite.ctx, suite.uploadInput(uuid.New(), models.EntityTypeUser, user.ID, "a.pdf", "x"))
	suite.Require().NoError(err)
	suite.Equal(MsgUserNotFound, res.Message())

	missing := uuid.New()
	res, err = suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeTaskRequest, missing, "a.pdf", "x"))
	suite.Require().NoError(err)
	suite.Equal(fmt.Sprintf("TaskRequest with ID %s not found", missing), res.Message())

	suite.Require().NoError(suite.db.Delete(task).Error)
	res, err = suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeTaskRequest, task.ID, "a.pdf", "x"))
	suite.Require().NoError(err)
	suite.Equal(fmt.Sprintf("TaskRequest with ID %s not found", task.ID), res.Message())

	res, err = suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, "virus.exe", "x"))
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(res.Message(), "File type '.exe' is not allowed."))

	suite.storage.uploadErr = errBoom
	res, err = suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, "a.pdf", "x"))
	suite.Require().NoError(err)
	suite.Equal("Failed to upload file: boom", res.Message())

	var count int64
	suite.Require().NoError(suite.db.Model(&models.FileAttachment{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestUpload_MetadataFailureRemovesObject() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	svc := NewFileService(failingFileRepo{suite.fileRepo}, suite.userRepo, suite.taskRepo, suite.storage, time.Minute, nil)

	_, err := svc.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, "a.pdf", "x"))
	suite.ErrorIs(err, errBoom)

	deleted := suite.storage.deletedKeys()
	suite.Require().Len(deleted, 1)
	_, ok := suite.storage.object(deleted[0])
	suite.False(ok)
}

func (suite *ServiceTestSuite) TestUploadInput_Validation() {
	messages, err := pipeline.Messages(pipeline.NewValidator(), UploadFileInput{EntityType: "Order"})
	suite.Require().NoError(err)
	suite.Equal([]string{
		"File name is required",
		"Entity ID is required",
		"Uploaded by user ID is required",
		MsgFileStreamRequired,
		MsgFileEmpty,
		MsgInvalidEntityType,
	}, messages)
}

func (suite *ServiceTestSuite) TestGetFile_WithDownloadURL() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	up, err := suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, "avatar.png", "png"))
	suite.Require().NoError(err)

	res, err := suite.files.Get(suite.ctx, FileIDInput{FileID: up.Data.FileID})
	suite.Require().NoError(err)
	suite.Require().True(res.IsSuccess())
	suite.Require().NotNil(res.Data.DownloadURL)
	suite.Contains(*res.Data.DownloadURL, "avatar.png")
	suite.Contains(*res.Data.DownloadURL, "expires=15m0s")
	suite.Require().NotNil(res.Data.UploadedByName)
	suite.Equal("Marie Careme", *res.Data.UploadedByName)

	res, err = suite.files.Get(suite.ctx, FileIDInput{FileID: uuid.New()})
	suite.Require().NoError(err)
	suite.Equal(MsgFileNotFound, res.Message())
}

func (suite *ServiceTestSuite) TestListByEntity_NewestFirstWithoutURLs() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	for _, name := range []string{"first.pdf", "second.pdf"} {
		res, err := suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, name, "data"))
		suite.Require().NoError(err)
		suite.Require().True(res.IsSuccess())
		time.Sleep(5 * time.Millisecond)
	}

	res, err := suite.files.ListByEntity(suite.ctx, FilesByEntityInput{EntityType: models.EntityTypeUser, EntityID: user.ID})
	suite.Require().NoError(err)
	suite.Require().Len(res.Data, 2)
	suite.Equal("second.pdf", res.Data[0].FileName)
	suite.Nil(res.Data[0].DownloadURL)
	suite.Require().NotNil(res.Data[0].UploadedByName)

	res, err = suite.files.ListByEntity(suite.ctx, FilesByEntityInput{EntityType: models.EntityTypeTaskRequest, EntityID: user.ID})
	suite.Require().NoError(err)
	suite.Empty(res.Data)
}

func (suite *ServiceTestSuite) TestDeleteFile() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	up, err := suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, "avatar.png", "png"))
	suite.Require().NoError(err)
	stored, err := suite.fileRepo.FindByID(suite.ctx, up.Data.FileID, false)
	suite.Require().NoError(err)

	// A cancelled request context must not abort the removal.
	ctx, cancel := context.WithCancel(suite.ctx)
	res, err := suite.files.Delete(ctx, FileIDInput{FileID: up.Data.FileID})
	cancel()
	suite.Require().NoError(err)
	suite.True(res.IsSuccess())

	suite.Require().NoError(suite.files.Wait(context.Background()))
	suite.Equal([]string{stored.S3Key}, suite.storage.deletedKeys())

	var row models.FileAttachment
	suite.Require().NoError(suite.db.Unscoped().Where("id = ?", up.Data.FileID).First(&row).Error)
	suite.True(row.IsDeleted())

	res, err = suite.files.Delete(suite.ctx, FileIDInput{FileID: up.Data.FileID})
	suite.Require().NoError(err)
	suite.Equal(MsgFileNotFound, res.Message())
}

func (suite *ServiceTestSuite) TestDeleteFile_StorageFailureIsOnlyLogged() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	up, err := suite.files.Upload(suite.ctx, suite.uploadInput(user.ID, models.EntityTypeUser, user.ID, "avatar.png", "png"))
	suite.Require().NoError(err)

	suite.storage.deleteErr = errBoom
	res, err := suite.files.Delete(suite.ctx, FileIDInput{FileID: up.Data.FileID})
	suite.Require().NoError(err)
	suite.True(res.IsSuccess())
	suite.Require().NoError(suite.files.Wait(context.Background()))
	suite.Len(suite.storage.deletedKeys(), 1)
}

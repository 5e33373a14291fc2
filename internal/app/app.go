// Package app is the table of use cases shared by the REST and agent surfaces.
package app

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
	"github.com/yukikurage/pastry-manager-api/internal/pipeline"
	"github.com/yukikurage/pastry-manager-api/internal/repository"
	"github.com/yukikurage/pastry-manager-api/internal/result"
	"github.com/yukikurage/pastry-manager-api/internal/services"
	"github.com/yukikurage/pastry-manager-api/internal/storage"
	"gorm.io/gorm"
)

// App holds one pipelined handler per use case.
type App struct {
	RegisterUser pipeline.HandlerFunc[services.RegisterUserInput, dto.UserDTO]
	GetUser      pipeline.HandlerFunc[services.GetUserInput, dto.UserDTO]
	GetUsers     pipeline.HandlerFunc[services.ListUsersInput, []dto.UserDTO]

	CreateTaskRequest      pipeline.HandlerFunc[services.CreateTaskRequestInput, dto.TaskRequestDTO]
	UpdateTaskStatus       pipeline.HandlerFunc[services.UpdateTaskStatusInput, dto.TaskRequestDTO]
	GetTaskRequest         pipeline.HandlerFunc[services.TaskRequestIDInput, dto.TaskRequestDTO]
	GetTaskRequests        pipeline.HandlerFunc[services.ListTaskRequestsInput, []dto.TaskRequestDTO]
	GetTasksByAssignedUser pipeline.HandlerFunc[services.TasksByUserInput, []dto.TaskRequestDTO]
	GetTasksByCreatedUser  pipeline.HandlerFunc[services.TasksByUserInput, []dto.TaskRequestDTO]
	DeleteTaskRequest      pipeline.HandlerFunc[services.TaskRequestIDInput, services.Empty]
	AddTaskComment         pipeline.HandlerFunc[services.AddTaskCommentInput, dto.TaskCommentDTO]
	GetTaskComments        pipeline.HandlerFunc[services.TaskRequestIDInput, []dto.TaskCommentDTO]

	UploadFile       pipeline.HandlerFunc[services.UploadFileInput, dto.FileUploadResultDTO]
	GetFile          pipeline.HandlerFunc[services.FileIDInput, dto.FileMetadataDTO]
	GetFilesByEntity pipeline.HandlerFunc[services.FilesByEntityInput, []dto.FileMetadataDTO]
	DeleteFile       pipeline.HandlerFunc[services.FileIDInput, services.Empty]

	files *services.FileService
}

// New wires repositories, services and behaviors.
func New(db *gorm.DB, fileStorage storage.FileStorage, presignExpiry time.Duration, logger log.FieldLogger) *App {
	if logger == nil {
		logger = log.StandardLogger()
	}
	v := pipeline.NewValidator()

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRequestRepository(db)
	commentRepo := repository.NewTaskCommentRepository(db)
	fileRepo := repository.NewFileAttachmentRepository(db)

	users := services.NewUserService(userRepo)
	tasks := services.NewTaskService(taskRepo, commentRepo, userRepo)
	files := services.NewFileService(fileRepo, userRepo, taskRepo, fileStorage, presignExpiry, logger)

	return &App{
		RegisterUser: handle("RegisterUser", users.Register, logger, v),
		GetUser:      handle("GetUser", users.Get, logger, v),
		GetUsers:     handle("GetUsers", users.List, logger, v),

		CreateTaskRequest:      handle("CreateTaskRequest", tasks.Create, logger, v),
		UpdateTaskStatus:       handle("UpdateTaskStatus", tasks.UpdateStatus, logger, v),
		GetTaskRequest:         handle("GetTaskRequest", tasks.Get, logger, v),
		GetTaskRequests:        handle("GetTaskRequests", tasks.List, logger, v),
		GetTasksByAssignedUser: handle("GetTasksByAssignedUser", tasks.ListAssigned, logger, v),
		GetTasksByCreatedUser:  handle("GetTasksByCreatedUser", tasks.ListCreated, logger, v),
		DeleteTaskRequest:      handle("DeleteTaskRequest", tasks.Delete, logger, v),
		AddTaskComment:         handle("AddTaskComment", tasks.AddComment, logger, v),
		GetTaskComments:        handle("GetTaskComments", tasks.ListComments, logger, v),

		UploadFile:       handle("UploadFile", files.Upload, logger, v),
		GetFile:          handle("GetFile", files.Get, logger, v),
		GetFilesByEntity: handle("GetFilesByEntity", files.ListByEntity, logger, v),
		DeleteFile:       handle("DeleteFile", files.Delete, logger, v),

		files: files,
	}
}

func handle[Req, Res any](
	name string,
	h func(context.Context, Req) (result.Result[Res], error),
	logger log.FieldLogger,
	v *validator.Validate,
) pipeline.HandlerFunc[Req, Res] {
	return pipeline.Chain[Req, Res](name, h, pipeline.Standard[Req, Res](logger, v)...)
}

// Wait blocks until background object removals finish or ctx is done.
func (a *App) Wait(ctx context.Context) error {
	return a.files.Wait(ctx)
}

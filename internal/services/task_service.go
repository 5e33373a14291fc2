package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/repository"
	"github.com/yukikurage/pastry-manager-api/internal/result"
	"gorm.io/gorm"
)

// TaskService handles task request and comment business logic
type TaskService struct {
	taskRepo    repository.TaskRequestRepository
	commentRepo repository.TaskCommentRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRequestRepository, commentRepo repository.TaskCommentRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreateTaskRequestInput represents input for creating a task request
type CreateTaskRequestInput struct {
	Title            string              `validate:"required,max=200" label:"Title"`
	Description      string              `validate:"required,max=2000" label:"Description"`
	Priority         models.TaskPriority `label:"Priority"`
	CreatedByUserID  uuid.UUID           `validate:"required" label:"Creator user ID"`
	AssignedToUserID uuid.UUID           `validate:"required" label:"Assigned user ID"`
	DueDate          *time.Time          `label:"Due date"`
}

func (in CreateTaskRequestInput) Validate() []string {
	var messages []string
	if !in.Priority.IsValid() {
		messages = append(messages, MsgInvalidPriority)
	}
	if in.DueDate != nil && !in.DueDate.After(time.Now()) {
		messages = append(messages, MsgDueDateInPast)
	}
	return messages
}

// UpdateTaskStatusInput represents a status transition
type UpdateTaskStatusInput struct {
	TaskRequestID uuid.UUID         `validate:"required" label:"Task request ID"`
	Status        models.TaskStatus `label:"Status"`
}

func (in UpdateTaskStatusInput) Validate() []string {
	if !in.Status.IsValid() {
		return []string{MsgInvalidStatus}
	}
	return nil
}

// TaskRequestIDInput identifies a task request
type TaskRequestIDInput struct {
	TaskRequestID uuid.UUID `validate:"required" label:"Task request ID"`
}

// ListTaskRequestsInput requests every task request
type ListTaskRequestsInput struct{}

// TasksByUserInput identifies the user whose tasks are listed
type TasksByUserInput struct {
	UserID uuid.UUID `validate:"required" label:"User ID"`
}

// AddTaskCommentInput represents a new comment on a task
type AddTaskCommentInput struct {
	TaskRequestID uuid.UUID `validate:"required" label:"Task request ID"`
	UserID        uuid.UUID `validate:"required" label:"User ID"`
	Content       string    `validate:"required,max=1000" label:"Content"`
}

// Create creates a pending task request between two active users
func (s *TaskService) Create(ctx context.Context, input CreateTaskRequestInput) (result.Result[dto.TaskRequestDTO], error) {
	creator, msg, err := s.activeUser(ctx, input.CreatedByUserID, MsgCreatorNotFound, MsgCreatorInactive)
	if err != nil {
		return result.Result[dto.TaskRequestDTO]{}, err
	}
	if msg != "" {
		return result.Failure[dto.TaskRequestDTO](msg), nil
	}

	assignee, msg, err := s.activeUser(ctx, input.AssignedToUserID, MsgAssigneeNotFound, MsgAssigneeInactive)
	if err != nil {
		return result.Result[dto.TaskRequestDTO]{}, err
	}
	if msg != "" {
		return result.Failure[dto.TaskRequestDTO](msg), nil
	}

	task := &models.TaskRequest{
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		Priority:         input.Priority,
		Status:           models.TaskStatusPending,
		DueDate:          input.DueDate,
		CreatedByUserID:  creator.ID,
		AssignedToUserID: assignee.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return result.Result[dto.TaskRequestDTO]{}, errors.Wrap(err, "failed to create task request")
	}

	return result.Success(dto.ToTaskRequestDTO(*task, creator.FullName(), assignee.FullName())), nil
}

// activeUser loads a user and reports a failure message when it is missing or inactive.
func (s *TaskService) activeUser(ctx context.Context, id uuid.UUID, notFound, inactive string) (*models.User, string, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound, nil
		}
		return nil, "", errors.Wrap(err, "failed to find user")
	}
	if !user.IsActive {
		return nil, inactive, nil
	}
	return user, "", nil
}

// UpdateStatus changes a task's status and stamps completion time
func (s *TaskService) UpdateStatus(ctx context.Context, input UpdateTaskStatusInput) (result.Result[dto.TaskRequestDTO], error) {
	task, err := s.taskRepo.FindByID(ctx, input.TaskRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[dto.TaskRequestDTO](MsgTaskNotFound), nil
		}
		return result.Result[dto.TaskRequestDTO]{}, errors.Wrap(err, "failed to find task request")
	}

	task.Status = input.Status
	if input.Status == models.TaskStatusCompleted {
		completedAt := s.now()
		task.CompletedAt = &completedAt
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return result.Result[dto.TaskRequestDTO]{}, errors.Wrap(err, "failed to update task request")
	}

	out, err := s.project(ctx, *task)
	if err != nil {
		return result.Result[dto.TaskRequestDTO]{}, err
	}
	return result.Success(out), nil
}

// Get returns a single task request
func (s *TaskService) Get(ctx context.Context, input TaskRequestIDInput) (result.Result[dto.TaskRequestDTO], error) {
	task, err := s.taskRepo.FindByID(ctx, input.TaskRequestID, repository.PreloadCreatedBy, repository.PreloadAssignedTo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[dto.TaskRequestDTO](MsgTaskNotFound), nil
		}
		return result.Result[dto.TaskRequestDTO]{}, errors.Wrap(err, "failed to find task request")
	}

	return result.Success(dto.ToTaskRequestDTO(*task, task.CreatedByUser.FullName(), task.AssignedToUser.FullName())), nil
}

// List lists every task request, newest first
func (s *TaskService) List(ctx context.Context, _ ListTaskRequestsInput) (result.Result[[]dto.TaskRequestDTO], error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return result.Result[[]dto.TaskRequestDTO]{}, errors.Wrap(err, "failed to list task requests")
	}
	return s.projectAll(ctx, tasks)
}

// ListAssigned lists the tasks assigned to a user, newest first
func (s *TaskService) ListAssigned(ctx context.Context, input TasksByUserInput) (result.Result[[]dto.TaskRequestDTO], error) {
	tasks, err := s.taskRepo.ListByAssignedUser(ctx, input.UserID)
	if err != nil {
		return result.Result[[]dto.TaskRequestDTO]{}, errors.Wrap(err, "failed to list assigned tasks")
	}
	return s.projectAll(ctx, tasks)
}

// ListCreated lists the tasks created by a user, newest first
func (s *TaskService) ListCreated(ctx context.Context, input TasksByUserInput) (result.Result[[]dto.TaskRequestDTO], error) {
	tasks, err := s.taskRepo.ListByCreatedUser(ctx, input.UserID)
	if err != nil {
		return result.Result[[]dto.TaskRequestDTO]{}, errors.Wrap(err, "failed to list created tasks")
	}
	return s.projectAll(ctx, tasks)
}

// Delete soft deletes a task request and its comments
func (s *TaskService) Delete(ctx context.Context, input TaskRequestIDInput) (result.Result[Empty], error) {
	if err := s.taskRepo.Delete(ctx, input.TaskRequestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[Empty](MsgTaskNotFound), nil
		}
		return result.Result[Empty]{}, errors.Wrap(err, "failed to delete task request")
	}
	return result.Success(Empty{}), nil
}

// AddComment appends a comment to a task request
func (s *TaskService) AddComment(ctx context.Context, input AddTaskCommentInput) (result.Result[dto.TaskCommentDTO], error) {
	exists, err := s.taskRepo.Exists(ctx, input.TaskRequestID)
	if err != nil {
		return result.Result[dto.TaskCommentDTO]{}, errors.Wrap(err, "failed to find task request")
	}
	if !exists {
		return result.Failure[dto.TaskCommentDTO](MsgTaskNotFound), nil
	}

	author, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[dto.TaskCommentDTO](MsgUserNotFound), nil
		}
		return result.Result[dto.TaskCommentDTO]{}, errors.Wrap(err, "failed to find user")
	}

	comment := &models.TaskComment{
		Content:       strings.TrimSpace(input.Content),
		TaskRequestID: input.TaskRequestID,
		UserID:        author.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return result.Result[dto.TaskCommentDTO]{}, errors.Wrap(err, "failed to create comment")
	}
	comment.User = *author

	return result.Success(dto.ToTaskCommentDTO(*comment)), nil
}

// ListComments lists a task's comments, oldest first
func (s *TaskService) ListComments(ctx context.Context, input TaskRequestIDInput) (result.Result[[]dto.TaskCommentDTO], error) {
	exists, err := s.taskRepo.Exists(ctx, input.TaskRequestID)
	if err != nil {
		return result.Result[[]dto.TaskCommentDTO]{}, errors.Wrap(err, "failed to find task request")
	}
	if !exists {
		return result.Failure[[]dto.TaskCommentDTO](MsgTaskNotFound), nil
	}

	comments, err := s.commentRepo.ListByTask(ctx, input.TaskRequestID)
	if err != nil {
		return result.Result[[]dto.TaskCommentDTO]{}, errors.Wrap(err, "failed to list comments")
	}

	out := make([]dto.TaskCommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ToTaskCommentDTO(c))
	}
	return result.Success(out), nil
}

// project resolves both users' names with individual lookups.
func (s *TaskService) project(ctx context.Context, task models.TaskRequest) (dto.TaskRequestDTO, error) {
	creatorName, err := displayName(ctx, s.userRepo, task.CreatedByUserID)
	if err != nil {
		return dto.TaskRequestDTO{}, err
	}
	assigneeName, err := displayName(ctx, s.userRepo, task.AssignedToUserID)
	if err != nil {
		return dto.TaskRequestDTO{}, err
	}
	return dto.ToTaskRequestDTO(task, creatorName, assigneeName), nil
}

func (s *TaskService) projectAll(ctx context.Context, tasks []models.TaskRequest) (result.Result[[]dto.TaskRequestDTO], error) {
	out := make([]dto.TaskRequestDTO, 0, len(tasks))
	for _, task := range tasks {
		item, err := s.project(ctx, task)
		if err != nil {
			return result.Result[[]dto.TaskRequestDTO]{}, err
		}
		out = append(out, item)
	}
	return result.Success(out), nil
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/app"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
	apierrors "github.com/yukikurage/pastry-manager-api/internal/errors"
	"github.com/yukikurage/pastry-manager-api/internal/middleware"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/services"
)

type TaskRequestHandler struct {
	app *app.App
}

func NewTaskRequestHandler(a *app.App) *TaskRequestHandler {
	return &TaskRequestHandler{app: a}
}

// CreateTaskRequest creates a task on behalf of the X-User-Id user
func (h *TaskRequestHandler) CreateTaskRequest(c *gin.Context) {
	creatorID, _ := middleware.GetUserID(c)

	var req dto.CreateTaskRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	var assigneeID uuid.UUID
	if raw := strings.TrimSpace(req.AssignedToUserID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			apierrors.InvalidFormat(c, "Invalid assigned_to_user_id")
			return
		}
		assigneeID = id
	}

	// Unknown values are passed through so validation reports them.
	priority := models.TaskPriorityMedium
	if strings.TrimSpace(req.Priority) != "" {
		priority, _ = models.ParseTaskPriority(req.Priority)
	}

	res, err := h.app.CreateTaskRequest(c.Request.Context(), services.CreateTaskRequestInput{
		Title:            req.Title,
		Description:      req.Description,
		Priority:         priority,
		CreatedByUserID:  creatorID,
		AssignedToUserID: assigneeID,
		DueDate:          req.DueDate,
	})
	render(c, res, err, http.StatusCreated)
}

// GetTaskRequest returns a task by ID
func (h *TaskRequestHandler) GetTaskRequest(c *gin.Context) {
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.app.GetTaskRequest(c.Request.Context(), services.TaskRequestIDInput{TaskRequestID: taskID})
	render(c, res, err, http.StatusOK, services.MsgTaskNotFound)
}

// ListTaskRequests returns every task, newest first
func (h *TaskRequestHandler) ListTaskRequests(c *gin.Context) {
	res, err := h.app.GetTaskRequests(c.Request.Context(), services.ListTaskRequestsInput{})
	render(c, res, err, http.StatusOK)
}

// ListAssigned returns the tasks assigned to a user
func (h *TaskRequestHandler) ListAssigned(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	res, err := h.app.GetTasksByAssignedUser(c.Request.Context(), services.TasksByUserInput{UserID: userID})
	render(c, res, err, http.StatusOK)
}

// ListCreated returns the tasks created by a user
func (h *TaskRequestHandler) ListCreated(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	res, err := h.app.GetTasksByCreatedUser(c.Request.Context(), services.TasksByUserInput{UserID: userID})
	render(c, res, err, http.StatusOK)
}

// UpdateStatus changes a task's status
func (h *TaskRequestHandler) UpdateStatus(c *gin.Context) {
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, _ := models.ParseTaskStatus(req.Status)

	res, err := h.app.UpdateTaskStatus(c.Request.Context(), services.UpdateTaskStatusInput{
		TaskRequestID: taskID,
		Status:        status,
	})
	render(c, res, err, http.StatusOK, services.MsgTaskNotFound)
}

// DeleteTaskRequest soft deletes a task and its comments
func (h *TaskRequestHandler) DeleteTaskRequest(c *gin.Context) {
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.app.DeleteTaskRequest(c.Request.Context(), services.TaskRequestIDInput{TaskRequestID: taskID})
	render(c, res, err, http.StatusNoContent, services.MsgTaskNotFound)
}

// AddComment comments on a task as the X-User-Id user
func (h *TaskRequestHandler) AddComment(c *gin.Context) {
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)

	var req dto.AddTaskCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.app.AddTaskComment(c.Request.Context(), services.AddTaskCommentInput{
		TaskRequestID: taskID,
		UserID:        userID,
		Content:       req.Content,
	})
	render(c, res, err, http.StatusCreated)
}

// ListComments returns a task's comments, oldest first
func (h *TaskRequestHandler) ListComments(c *gin.Context) {
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.app.GetTaskComments(c.Request.Context(), services.TaskRequestIDInput{TaskRequestID: taskID})
	render(c, res, err, http.StatusOK, services.MsgTaskNotFound)
}

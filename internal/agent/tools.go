package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/yukikurage/pastry-manager-api/internal/app"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/result"
	"github.com/yukikurage/pastry-manager-api/internal/services"
)

// Envelope is the JSON text every tool returns.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type toolFunc func(ctx context.Context, a *app.App, args json.RawMessage) (Envelope, error)

type tool struct {
	definition mcp.Tool
	call       toolFunc
}

func tools() []tool {
	return []tool{
		{
			definition: mcp.NewTool("register_user",
				mcp.WithDescription("Register a new user in the system"),
				mcp.WithString("email", mcp.Required(), mcp.Description("User email address")),
				mcp.WithString("firstName", mcp.Required(), mcp.Description("User first name")),
				mcp.WithString("lastName", mcp.Required(), mcp.Description("User last name")),
				mcp.WithString("password", mcp.Required(), mcp.Description("User password (min 8 characters)")),
				mcp.WithString("phoneNumber", mcp.Description("User phone number (optional)")),
			),
			call: registerUser,
		},
		{
			definition: mcp.NewTool("get_user",
				mcp.WithDescription("Get user details by ID"),
				mcp.WithString("userId", mcp.Required(), mcp.Description("User ID (UUID)")),
			),
			call: getUser,
		},
		{
			definition: mcp.NewTool("create_task",
				mcp.WithDescription("Create a new task request"),
				mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
				mcp.WithString("description", mcp.Required(), mcp.Description("Task description")),
				mcp.WithString("priority", mcp.Required(), mcp.Description("Task priority: Low, Medium, High, or Critical")),
				mcp.WithString("createdByUserId", mcp.Required(), mcp.Description("UUID of user creating the task")),
				mcp.WithString("assignedToUserId", mcp.Required(), mcp.Description("UUID of user assigned to the task")),
				mcp.WithString("dueDate", mcp.Description("Due date (RFC 3339 or YYYY-MM-DD, optional)")),
			),
			call: createTask,
		},
		{
			definition: mcp.NewTool("update_task_status",
				mcp.WithDescription("Update the status of an existing task"),
				mcp.WithString("taskId", mcp.Required(), mcp.Description("UUID of the task to update")),
				mcp.WithString("status", mcp.Required(), mcp.Description("New task status: Pending, InProgress, Completed, Cancelled, or OnHold")),
			),
			call: updateTaskStatus,
		},
		{
			definition: mcp.NewTool("get_assigned_tasks",
				mcp.WithDescription("Get all tasks assigned to a specific user"),
				mcp.WithString("userId", mcp.Required(), mcp.Description("User ID (UUID)")),
			),
			call: getAssignedTasks,
		},
	}
}

// argumentError is reported to the agent as a failed envelope.
type argumentError struct {
	msg string
}

func (e *argumentError) Error() string { return e.msg }

func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &argumentError{msg: "Invalid arguments: " + err.Error()}
	}
	return nil
}

func parseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, &argumentError{msg: fmt.Sprintf("Invalid %s: %q is not a valid UUID", name, value)}
	}
	return id, nil
}

func parseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, &argumentError{msg: fmt.Sprintf("Invalid dueDate: %q", value)}
}

// envelope converts a use case outcome; infrastructure errors pass through.
func envelope[T any](res result.Result[T], err error) (Envelope, error) {
	if err != nil {
		return Envelope{}, err
	}
	if !res.IsSuccess() {
		return Envelope{Error: res.Joined()}, nil
	}
	return Envelope{Success: true, Data: res.Data}, nil
}

func registerUser(ctx context.Context, a *app.App, raw json.RawMessage) (Envelope, error) {
	var args struct {
		Email       string  `json:"email"`
		FirstName   string  `json:"firstName"`
		LastName    string  `json:"lastName"`
		Password    string  `json:"password"`
		PhoneNumber *string `json:"phoneNumber"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return Envelope{}, err
	}
	return envelope(a.RegisterUser(ctx, services.RegisterUserInput{
		Email:       args.Email,
		FirstName:   args.FirstName,
		LastName:    args.LastName,
		Password:    args.Password,
		PhoneNumber: args.PhoneNumber,
	}))
}

func getUser(ctx context.Context, a *app.App, raw json.RawMessage) (Envelope, error) {
	var args struct {
		UserID string `json:"userId"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return Envelope{}, err
	}
	id, err := parseID("userId", args.UserID)
	if err != nil {
		return Envelope{}, err
	}
	return envelope(a.GetUser(ctx, services.GetUserInput{UserID: id}))
}

func createTask(ctx context.Context, a *app.App, raw json.RawMessage) (Envelope, error) {
	var args struct {
		Title            string `json:"title"`
		Description      string `json:"description"`
		Priority         string `json:"priority"`
		CreatedByUserID  string `json:"createdByUserId"`
		AssignedToUserID string `json:"assignedToUserId"`
		DueDate          string `json:"dueDate"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return Envelope{}, err
	}
	creator, err := parseID("createdByUserId", args.CreatedByUserID)
	if err != nil {
		return Envelope{}, err
	}
	assignee, err := parseID("assignedToUserId", args.AssignedToUserID)
	if err != nil {
		return Envelope{}, err
	}
	dueDate, err := parseDueDate(args.DueDate)
	if err != nil {
		return Envelope{}, err
	}

	priority := models.TaskPriorityMedium
	if args.Priority != "" {
		priority, _ = models.ParseTaskPriority(args.Priority)
	}

	return envelope(a.CreateTaskRequest(ctx, services.CreateTaskRequestInput{
		Title:            args.Title,
		Description:      args.Description,
		Priority:         priority,
		CreatedByUserID:  creator,
		AssignedToUserID: assignee,
		DueDate:          dueDate,
	}))
}

func updateTaskStatus(ctx context.Context, a *app.App, raw json.RawMessage) (Envelope, error) {
	var args struct {
		TaskID string `json:"taskId"`
		Status string `json:"status"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return Envelope{}, err
	}
	id, err := parseID("taskId", args.TaskID)
	if err != nil {
		return Envelope{}, err
	}
	status, _ := models.ParseTaskStatus(args.Status)
	return envelope(a.UpdateTaskStatus(ctx, services.UpdateTaskStatusInput{TaskRequestID: id, Status: status}))
}

func getAssignedTasks(ctx context.Context, a *app.App, raw json.RawMessage) (Envelope, error) {
	var args struct {
		UserID string `json:"userId"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return Envelope{}, err
	}
	id, err := parseID("userId", args.UserID)
	if err != nil {
		return Envelope{}, err
	}
	return envelope(a.GetTasksByAssignedUser(ctx, services.TasksByUserInput{UserID: id}))
}

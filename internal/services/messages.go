package services

// Failure messages returned in results. Handlers compare against these to
// pick a status code.
const (
	MsgUserExists          = "User with this email already exists"
	MsgUserNotFound        = "User not found"
	MsgCreatorNotFound     = "Creator user not found"
	MsgAssigneeNotFound    = "Assigned user not found"
	MsgCreatorInactive     = "Creator user is not active"
	MsgAssigneeInactive    = "Assigned user is not active"
	MsgTaskNotFound        = "Task request not found"
	MsgFileNotFound        = "File not found"
	MsgInvalidPriority     = "Invalid priority value"
	MsgInvalidStatus       = "Invalid status value"
	MsgInvalidEntityType   = "Invalid entity type"
	MsgDueDateInPast       = "Due date must be in the future"
	MsgFileStreamRequired  = "File stream is required"
	MsgFileEmpty           = "File cannot be empty"
	MsgUploadFailedPrefix  = "Failed to upload file: "
	DefaultFileContentType = "application/octet-stream"
)

// Empty is the payload of use cases that return nothing on success.
type Empty struct{}

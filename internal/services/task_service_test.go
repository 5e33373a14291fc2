package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/pipeline"
)

func (suite *ServiceTestSuite) createInput(creator, assignee uuid.UUID) CreateTaskRequestInput {
	due := time.Now().Add(48 * time.Hour)
	return CreateTaskRequestInput{
		Title:            "Wedding cake",
		Description:      "Three tiers, lemon curd",
		Priority:         models.TaskPriorityCritical,
		CreatedByUserID:  creator,
		AssignedToUserID: assignee,
		DueDate:          &due,
	}
}

func (suite *ServiceTestSuite) TestCreateTask() {
	creator := suite.createUser("owner@pastry.com", "Pierre", "Herme")
	assignee := suite.createUser("baker@pastry.com", "Marie", "Careme")

	res, err := suite.tasks.Create(suite.ctx, suite.createInput(creator.ID, assignee.ID))
	suite.Require().NoError(err)
	suite.Require().True(res.IsSuccess(), res.Errors)

	suite.Equal(models.TaskStatusPending, res.Data.Status)
	suite.Equal(models.TaskPriorityCritical, res.Data.Priority)
	suite.Equal("Pierre Herme", res.Data.CreatedByUserName)
	suite.Equal("Marie Careme", res.Data.AssignedToUserName)
	suite.Nil(res.Data.CompletedAt)
	suite.NotNil(res.Data.DueDate)

	exists, err := suite.taskRepo.Exists(suite.ctx, res.Data.ID)
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *ServiceTestSuite) TestCreateTask_UserChecks() {
	creator := suite.createUser("owner@pastry.com", "Pierre", "Herme")
	assignee := suite.createUser("baker@pastry.com", "Marie", "Careme")

	res, err := suite.tasks.Create(suite.ctx, suite.createInput(uuid.New(), assignee.ID))
	suite.Require().NoError(err)
	suite.Equal(MsgCreatorNotFound, res.Message())

	res, err = suite.tasks.Create(suite.ctx, suite.createInput(creator.ID, uuid.New()))
	suite.Require().NoError(err)
	suite.Equal(MsgAssigneeNotFound, res.Message())

	suite.deactivate(assignee)
	res, err = suite.tasks.Create(suite.ctx, suite.createInput(creator.ID, assignee.ID))
	suite.Require().NoError(err)
	suite.Equal(MsgAssigneeInactive, res.Message())

	suite.deactivate(creator)
	res, err = suite.tasks.Create(suite.ctx, suite.createInput(creator.ID, assignee.ID))
	suite.Require().NoError(err)
	suite.Equal(MsgCreatorInactive, res.Message())

	var count int64
	suite.Require().NoError(suite.db.Model(&models.TaskRequest{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestCreateTaskInput_Validation() {
	past := time.Now().Add(-time.Hour)
	input := CreateTaskRequestInput{
		Description: string(make([]byte, 2001)),
		Priority:    models.TaskPriority("Urgent"),
		DueDate:     &past,
	}

	messages, err := pipeline.Messages(pipeline.NewValidator(), input)
	suite.Require().NoError(err)
	suite.Equal([]string{
		"Title is required",
		"Description must not exceed 2000 characters",
		"Creator user ID is required",
		"Assigned user ID is required",
		MsgInvalidPriority,
		MsgDueDateInPast,
	}, messages)
}

func (suite *ServiceTestSuite) TestUpdateStatus_CompletedStampsTime() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	task := suite.createTask("Eclairs", user, user, time.Now())
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	suite.tasks.now = func() time.Time { return fixed }

	res, err := suite.tasks.UpdateStatus(suite.ctx, UpdateTaskStatusInput{TaskRequestID: task.ID, Status: models.TaskStatusInProgress})
	suite.Require().NoError(err)
	suite.Require().True(res.IsSuccess())
	suite.Equal(models.TaskStatusInProgress, res.Data.Status)
	suite.Nil(res.Data.CompletedAt)

	res, err = suite.tasks.UpdateStatus(suite.ctx, UpdateTaskStatusInput{TaskRequestID: task.ID, Status: models.TaskStatusCompleted})
	suite.Require().NoError(err)
	suite.Require().NotNil(res.Data.CompletedAt)
	suite.True(fixed.Equal(*res.Data.CompletedAt))

	// Leaving Completed keeps the stamp.
	res, err = suite.tasks.UpdateStatus(suite.ctx, UpdateTaskStatusInput{TaskRequestID: task.ID, Status: models.TaskStatusOnHold})
	suite.Require().NoError(err)
	suite.Require().NotNil(res.Data.CompletedAt)

	var stored models.TaskRequest
	suite.Require().NoError(suite.db.Where("id = ?", task.ID).First(&stored).Error)
	suite.Equal(models.TaskStatusOnHold, stored.Status)
	suite.Require().NotNil(stored.CompletedAt)
}

func (suite *ServiceTestSuite) TestUpdateStatus_NotFoundAndDeletedUser() {
	res, err := suite.tasks.UpdateStatus(suite.ctx, UpdateTaskStatusInput{TaskRequestID: uuid.New(), Status: models.TaskStatusCancelled})
	suite.Require().NoError(err)
	suite.Equal(MsgTaskNotFound, res.Message())

	creator := suite.createUser("owner@pastry.com", "Pierre", "Herme")
	assignee := suite.createUser("baker@pastry.com", "Marie", "Careme")
	task := suite.createTask("Tarts", creator, assignee, time.Now())
	suite.Require().NoError(suite.db.Delete(assignee).Error)

	res, err = suite.tasks.UpdateStatus(suite.ctx, UpdateTaskStatusInput{TaskRequestID: task.ID, Status: models.TaskStatusCancelled})
	suite.Require().NoError(err)
	suite.Require().True(res.IsSuccess())
	suite.Equal("Pierre Herme", res.Data.CreatedByUserName)
	suite.Equal("", res.Data.AssignedToUserName)
}

func (suite *ServiceTestSuite) TestUpdateStatusInput_Validation() {
	messages, err := pipeline.Messages(pipeline.NewValidator(), UpdateTaskStatusInput{TaskRequestID: uuid.New(), Status: "Done"})
	suite.Require().NoError(err)
	suite.Equal([]string{MsgInvalidStatus}, messages)
}

func (suite *ServiceTestSuite) TestListAssignedAndCreated() {
	creator := suite.createUser("owner@pastry.com", "Pierre", "Herme")
	assignee := suite.createUser("baker@pastry.com", "Marie", "Careme")
	base := time.Now().Add(-time.Hour)
	suite.createTask("Older", creator, assignee, base)
	suite.createTask("Newer", creator, assignee, base.Add(time.Minute))

	res, err := suite.tasks.ListAssigned(suite.ctx, TasksByUserInput{UserID: assignee.ID})
	suite.Require().NoError(err)
	suite.Require().Len(res.Data, 2)
	suite.Equal("Newer", res.Data[0].Title)
	suite.Equal("Pierre Herme", res.Data[0].CreatedByUserName)
	suite.Equal("Marie Careme", res.Data[0].AssignedToUserName)

	res, err = suite.tasks.ListCreated(suite.ctx, TasksByUserInput{UserID: creator.ID})
	suite.Require().NoError(err)
	suite.Len(res.Data, 2)

	res, err = suite.tasks.ListAssigned(suite.ctx, TasksByUserInput{UserID: uuid.New()})
	suite.Require().NoError(err)
	suite.True(res.IsSuccess())
	suite.NotNil(res.Data)
	suite.Empty(res.Data)
}

func (suite *ServiceTestSuite) TestListAllTasks() {
	creator := suite.createUser("owner@pastry.com", "Pierre", "Herme")
	assignee := suite.createUser("baker@pastry.com", "Marie", "Careme")
	base := time.Now().Add(-time.Hour)
	suite.createTask("Older", creator, assignee, base)
	suite.createTask("Newer", assignee, creator, base.Add(time.Minute))

	res, err := suite.tasks.List(suite.ctx, ListTaskRequestsInput{})
	suite.Require().NoError(err)
	suite.Require().Len(res.Data, 2)
	suite.Equal("Newer", res.Data[0].Title)
	suite.Equal("Marie Careme", res.Data[0].CreatedByUserName)
	suite.Equal("Older", res.Data[1].Title)
}

func (suite *ServiceTestSuite) TestGetAndDeleteTask() {
	user := suite.createUser("baker@pastry.com", "Marie", "Careme")
	task := suite.createTask("Macarons", user, user, time.Now())

	res, err := suite.tasks.Get(suite.ctx, TaskRequestIDInput{TaskRequestID: task.ID})
	suite.Require().NoError(err)
	suite.Require().True(res.IsSuccess())
	suite.Equal("Marie Careme", res.Data.AssignedToUserName)

	del, err := suite.tasks.Delete(suite.ctx, TaskRequestIDInput{TaskRequestID: task.ID})
	suite.Require().NoError(err)
	suite.True(del.IsSuccess())

	res, err = suite.tasks.Get(suite.ctx, TaskRequestIDInput{TaskRequestID: task.ID})
	suite.Require().NoError(err)
	suite.Equal(MsgTaskNotFound, res.Message())

	del, err = suite.tasks.Delete(suite.ctx, TaskRequestIDInput{TaskRequestID: task.ID})
	suite.Require().NoError(err)
	suite.Equal(MsgTaskNotFound, del.Message())
}

func (suite *ServiceTestSuite) TestComments() {
	author := suite.createUser("baker@pastry.com", "Marie", "Careme")
	task := suite.createTask("Brioche", author, author, time.Now())

	first, err := suite.tasks.AddComment(suite.ctx, AddTaskCommentInput{TaskRequestID: task.ID, UserID: author.ID, Content: " Proof overnight "})
	suite.Require().NoError(err)
	suite.Require().True(first.IsSuccess())
	suite.Equal("Proof overnight", first.Data.Content)
	suite.Equal("Marie Careme", first.Data.UserName)

	time.Sleep(5 * time.Millisecond)
	_, err = suite.tasks.AddComment(suite.ctx, AddTaskCommentInput{TaskRequestID: task.ID, UserID: author.ID, Content: "Egg wash"})
	suite.Require().NoError(err)

	list, err := suite.tasks.ListComments(suite.ctx, TaskRequestIDInput{TaskRequestID: task.ID})
	suite.Require().NoError(err)
	suite.Require().Len(list.Data, 2)
	suite.Equal("Proof overnight", list.Data[0].Content)
	suite.Equal("Egg wash", list.Data[1].Content)

	missing, err := suite.tasks.AddComment(suite.ctx, AddTaskCommentInput{TaskRequestID: uuid.New(), UserID: author.ID, Content: "x"})
	suite.Require().NoError(err)
	suite.Equal(MsgTaskNotFound, missing.Message())

	missing, err = suite.tasks.AddComment(suite.ctx, AddTaskCommentInput{TaskRequestID: task.ID, UserID: uuid.New(), Content: "x"})
	suite.Require().NoError(err)
	suite.Equal(MsgUserNotFound, missing.Message())

	none, err := suite.tasks.ListComments(suite.ctx, TaskRequestIDInput{TaskRequestID: uuid.New()})
	suite.Require().NoError(err)
	suite.Equal(MsgTaskNotFound, none.Message())
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/pastry-manager-api/internal/app"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
	"github.com/yukikurage/pastry-manager-api/internal/services"
)

type UserHandler struct {
	app *app.App
}

func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{app: a}
}

// Register creates a user account
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.app.RegisterUser(c.Request.Context(), services.RegisterUserInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	render(c, res, err, http.StatusCreated)
}

// ListUsers returns every user ordered by last name
func (h *UserHandler) ListUsers(c *gin.Context) {
	res, err := h.app.GetUsers(c.Request.Context(), services.ListUsersInput{})
	render(c, res, err, http.StatusOK)
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.app.GetUser(c.Request.Context(), services.GetUserInput{UserID: userID})
	render(c, res, err, http.StatusOK, services.MsgUserNotFound)
}

package handlers

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
)

// TestRegister_Success tests successful registration
func (suite *HandlerTestSuite) TestRegister_Success() {
	w := suite.perform(http.MethodPost, "/api/users/register", gin.H{
		"email":        "New.Baker@Example.com",
		"first_name":   "Antonin",
		"last_name":    "Careme",
		"password":     "puffpastry",
		"phone_number": "+33 6 00 00 00 00",
	}, nil)

	suite.Equal(http.StatusCreated, w.Code)

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("new.baker@example.com", user.Email)
	suite.Equal("User", string(user.Role))
	suite.True(user.IsActive)
}

// TestRegister_ValidationErrors tests that every message is returned
func (suite *HandlerTestSuite) TestRegister_ValidationErrors() {
	w := suite.perform(http.MethodPost, "/api/users/register", gin.H{
		"email":    "not-an-email",
		"password": "short",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	apiErr := suite.decodeError(w)
	suite.Equal("Email must be a valid email address", apiErr.Message)
	suite.Len(apiErr.Errors, 4)
}

// TestRegister_DuplicateEmail tests registration with an existing email
func (suite *HandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.createTestUser("baker@example.com")

	w := suite.perform(http.MethodPost, "/api/users/register", gin.H{
		"email":      "BAKER@example.com",
		"first_name": "Other",
		"last_name":  "Baker",
		"password":   "password123",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"User with this email already exists"}, suite.decodeError(w).Errors)
}

// TestRegister_MalformedBody tests a body that is not JSON
func (suite *HandlerTestSuite) TestRegister_MalformedBody() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/users/register", nil)
	c.Request.Header.Set("Content-Type", "application/json")

	NewUserHandler(suite.app).Register(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestGetUser tests lookup, unknown IDs and malformed IDs
func (suite *HandlerTestSuite) TestGetUser() {
	user := suite.createTestUser("baker@example.com")

	w := suite.perform(http.MethodGet, "/api/users/"+user.ID.String(), nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var got dto.UserDTO
	suite.decode(w, &got)
	suite.Equal(user.ID, got.ID)

	w = suite.perform(http.MethodGet, "/api/users/"+uuid.NewString(), nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("User not found", suite.decodeError(w).Message)

	w = suite.perform(http.MethodGet, "/api/users/42", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestListUsers tests the user listing
func (suite *HandlerTestSuite) TestListUsers() {
	suite.createTestUser("baker@example.com")
	suite.createTestUser("chef@example.com")

	w := suite.perform(http.MethodGet, "/api/users", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var users []dto.UserDTO
	suite.decode(w, &users)
	suite.Len(users, 2)
}

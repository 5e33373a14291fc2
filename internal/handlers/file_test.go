package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/constants"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
)

func (suite *HandlerTestSuite) upload(url, fileName, content string, userID *uuid.UUID) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		suite.Require().NoError(err)
		_, err = part.Write([]byte(content))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if userID != nil {
		req.Header.Set(constants.HeaderUserID, userID.String())
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// TestUploadAndFetchFile tests the upload, metadata and download link flow
func (suite *HandlerTestSuite) TestUploadAndFetchFile() {
	user := suite.createTestUser("baker@example.com")
	task := suite.createTestTask("Opera", user.ID, user.ID)

	w := suite.upload("/api/files/taskrequest/"+task.ID.String(), "layers.txt", "joconde, ganache", &user.ID)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var uploaded dto.FileUploadResultDTO
	suite.decode(w, &uploaded)
	suite.Equal("layers.txt", uploaded.FileName)
	suite.Equal(int64(16), uploaded.FileSizeBytes)
	suite.Equal("File uploaded successfully", uploaded.Message)

	w = suite.perform(http.MethodGet, "/api/files/"+uploaded.FileID.String(), nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var meta dto.FileMetadataDTO
	suite.decode(w, &meta)
	suite.Require().NotNil(meta.DownloadURL)
	suite.True(strings.HasPrefix(*meta.DownloadURL, "http://minio.local/bucket/uploads/taskrequest/"))

	w = suite.perform(http.MethodGet, "/api/files/TaskRequest/"+task.ID.String(), nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "download_url")
	var list []dto.FileMetadataDTO
	suite.decode(w, &list)
	suite.Len(list, 1)
}

// TestUpload_Failures tests rejected uploads
func (suite *HandlerTestSuite) TestUpload_Failures() {
	user := suite.createTestUser("baker@example.com")
	url := "/api/files/user/" + user.ID.String()

	w := suite.upload(url, "a.txt", "x", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.upload(url, "", "", &user.ID)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("File is required", suite.decodeError(w).Message)

	w = suite.upload(url, "tool.exe", "x", &user.ID)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w).Message, "File type '.exe' is not allowed")

	w = suite.upload("/api/files/order/"+user.ID.String(), "a.txt", "x", &user.ID)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid entity type", suite.decodeError(w).Message)

	w = suite.upload(url, "big.txt", strings.Repeat("x", 2048), &user.ID)
	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

// TestDeleteFile tests soft deletion and background removal
func (suite *HandlerTestSuite) TestDeleteFile() {
	user := suite.createTestUser("baker@example.com")
	w := suite.upload("/api/files/user/"+user.ID.String(), "avatar.png", "png", &user.ID)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var uploaded dto.FileUploadResultDTO
	suite.decode(w, &uploaded)

	url := "/api/files/" + uploaded.FileID.String()
	w = suite.perform(http.MethodDelete, url, nil, &user.ID)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.perform(http.MethodGet, url, nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.perform(http.MethodDelete, url, nil, &user.ID)
	suite.Equal(http.StatusNotFound, w.Code)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/pastry-manager-api/internal/errors"
	"github.com/yukikurage/pastry-manager-api/internal/result"
)

// render writes a use-case outcome. Infrastructure errors are handed to the
// error middleware; failures whose message is in notFound answer 404, other
// failures 400.
func render[T any](c *gin.Context, res result.Result[T], err error, successStatus int, notFound ...string) {
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !res.IsSuccess() {
		status := http.StatusBadRequest
		for _, msg := range notFound {
			if res.Message() == msg {
				status = http.StatusNotFound
				break
			}
		}
		apierrors.Failed(c, status, res.Errors)
		return
	}

	if successStatus == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(successStatus, res.Data)
}

// uuidParam parses a path parameter, answering 400 when it is not a UUID.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.InvalidFormat(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

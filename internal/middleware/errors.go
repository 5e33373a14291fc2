package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/pastry-manager-api/internal/errors"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler turns errors attached with c.Error into a 500 response.
// The underlying message is only exposed when exposeDetails is set.
func ErrorHandler(logger log.FieldLogger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Unhandled error")

		if c.Writer.Written() {
			return
		}
		respondInternal(c, err.Error(), exposeDetails)
	}
}

// Recovery converts panics into the same 500 response.
func Recovery(logger log.FieldLogger, exposeDetails bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("Recovered from panic")
		respondInternal(c, fmt.Sprint(recovered), exposeDetails)
	})
}

func respondInternal(c *gin.Context, detail string, exposeDetails bool) {
	if exposeDetails {
		apierrors.InternalError(c, internalErrorMessage, detail)
		return
	}
	apierrors.InternalError(c, internalErrorMessage)
}

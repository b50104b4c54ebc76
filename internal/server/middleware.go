package server

import (
	"time"

	"github.com/gin-gonic/gin"

	ierr "github.com/rezonia/gst-invoice/internal/errors"
	"github.com/rezonia/gst-invoice/internal/logger"
)

// errorHandler renders the last error a handler attached with c.Error
func errorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			log.Errorw("request failed", "path", c.FullPath(), "status", status, "error", err)
		}

		c.JSON(status, ErrorResponse{
			Error:   ierr.Hint(err),
			Code:    ierr.Code(err),
			Details: ierr.Details(err),
		})
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 12

// ErrorHandler renders the last public error when a handler left the response
// unwritten, and logs the stack of every server-side failure.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			resp, ok := e.Meta.(httperr.Response)
			if !ok || resp.Status < http.StatusInternalServerError {
				continue
			}
			logger.ErrorContext(c.Request.Context(), "request failed",
				slog.String("request_id", GetRequestID(c)),
				slog.String("error", e.Err.Error()),
				slog.Any("stack", errs.ExtractStackLines(e.Err, stackLines)),
			)
		}

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.New(c, http.StatusInternalServerError, "Internal server error", nil))
	}
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := strings.Split(string(debug.Stack()), "\n")
				if len(stack) > stackLines {
					stack = stack[:stackLines]
				}
				logger.Error("recovered from panic",
					slog.Any("error", rec),
					slog.String("path", c.Request.URL.Path),
					slog.String("request_id", GetRequestID(c)),
					slog.Any("stack", stack),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.New(c, http.StatusInternalServerError, "Internal server error", nil))
			}
		}()
		c.Next()
	}
}

func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, httperr.New(c, http.StatusNotFound, "Route not found", nil))
}

func NoMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, httperr.New(c, http.StatusMethodNotAllowed, "Method not allowed", nil))
}

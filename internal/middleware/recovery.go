package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/energy/backend/internal/apierror"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
)

// Recovery turns a panic into a logged 500 problem response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(r)
			}

			logger.Ctx(c.Request.Context()).Error("panic recovered",
				logger.Any("panic", r),
				logger.String("route", c.FullPath()),
				logger.String("stack", string(debug.Stack())),
			)
			apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
			c.Abort()
		}()

		c.Next()
	}
}

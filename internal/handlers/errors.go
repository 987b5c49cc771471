package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/energy/backend/internal/apierror"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
	"github.com/JonnyWalker81/energy/backend/internal/middleware"
	"github.com/JonnyWalker81/energy/backend/internal/service"
)

// requireOwner returns the authenticated owner, writing a 401 when the auth
// middleware did not run.
func requireOwner(c *gin.Context) (string, bool) {
	ownerID := c.GetString(middleware.OwnerIDKey)
	if ownerID == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return ownerID, true
}

// writeServiceError maps service errors onto problem responses. Anything
// unrecognized is logged and reported as a 500 without details.
func writeServiceError(c *gin.Context, err error, activityID string) {
	requestID := apierror.GetRequestID(c)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := toProblemFields(verr.Fields)
		if verr.OnlyFutureTimestamp() {
			apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, fields))
			return
		}
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fields))
	case errors.Is(err, service.ErrActivityNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Activity", activityID))
	default:
		logger.Ctx(c.Request.Context()).Error("request failed",
			logger.String("route", c.FullPath()),
			logger.Err(err),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

func toProblemFields(fields []service.FieldError) []apierror.FieldError {
	out := make([]apierror.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, apierror.FieldError{Field: f.Field, Message: f.Message, Code: f.Code})
	}
	return out
}

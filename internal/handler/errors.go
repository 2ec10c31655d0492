package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/middleware"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
)

// fail maps a service or repository error onto the response envelope.
// Unmapped errors become 500 and are attached to the context so the request
// logger records them.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrForeignKey):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)

	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrInvalidSignature):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidSignature)

	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrNotLinked):
		response.Fail(c, http.StatusForbidden, response.ErrNotLinked)
	case errors.Is(err, service.ErrNotGradeOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotGradeOwner)
	case errors.Is(err, service.ErrNotParticipant):
		response.Fail(c, http.StatusForbidden, response.ErrNotParticipant)

	case errors.Is(err, service.ErrRoleMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrRoleMismatch)
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"range": "start must come before end",
		})
	case errors.Is(err, service.ErrInvalidSetting):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"settings": err.Error(),
		})
	case errors.Is(err, service.ErrInvalidPayload):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)

	case errors.Is(err, service.ErrInvalidTransition):
		response.Fail(c, http.StatusConflict, response.ErrInvalidTransition)
	case errors.Is(err, service.ErrInvoiceAlreadyPaid):
		response.Fail(c, http.StatusConflict, response.ErrInvoicePaid)

	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// invalid answers 400 with the translated validation fields.
func invalid(c *gin.Context, fields map[string]string) {
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
}

// paramID parses a UUID path parameter, answering 400 INVALID_ID on failure.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// principal returns the authenticated caller, answering 401 when absent.
func principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	}
	return p, ok
}

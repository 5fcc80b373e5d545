package handlers

import (
	"errors"
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/crm"
	"github.com/drhenri-ux/octorlink/internal/repository"
	"github.com/drhenri-ux/octorlink/internal/wizard"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var notFoundErrors = []error{
	repository.ErrLeadNotFound,
	repository.ErrPlanNotFound,
	repository.ErrAppNotFound,
	repository.ErrServiceNotFound,
	repository.ErrReferralNotFound,
	wizard.ErrSessionNotFound,
	crm.ErrLeadNotLoaded,
}

var badRequestErrors = []error{
	wizard.ErrStepInvalid,
	wizard.ErrNotOnFinalStep,
	wizard.ErrLastStep,
	crm.ErrUnknownStatus,
}

func statusFor(err error) int {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	if errors.Is(err, catalog.ErrConfirmationRequired) || errors.Is(err, crm.ErrConfirmationRequired) {
		return http.StatusPreconditionRequired
	}
	if errors.Is(err, catalog.ErrUploadsDisabled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the JSON error body. Server-side failures are logged
// with the operation name; client errors are not.
func respondError(c *gin.Context, logger *zap.Logger, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.Error(err), zap.String("path", c.FullPath()))
	}

	body := gin.H{"error": message, "details": err.Error()}
	var stepErr *wizard.StepError
	if errors.As(err, &stepErr) {
		body["missing"] = stepErr.Missing
	}
	c.JSON(status, body)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// confirmed reports whether a destructive request carries ?confirm=true
func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}

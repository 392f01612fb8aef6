// errors.go - Renders failures as the JSON error body shared by every endpoint

package middleware

import (
	"errors"
	"net/http"
	"time"

	"go-blog-backend/apperrors"
	"go-blog-backend/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AbortWithError writes {timestamp, status, error, message} for err and stops
// the handler chain. Unclassified errors become a 500.
func AbortWithError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	message := err.Error()
	if kind == apperrors.KindInternal {
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Something went wrong: " + message
	}

	c.AbortWithStatusJSON(status, gin.H{
		"timestamp": time.Now(),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
	})
}

// AbortWithBindError reports request binding failures. Validation errors are
// listed per field; anything else (malformed JSON, wrong types) is a plain 400.
func AbortWithBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		AbortWithError(c, apperrors.BadRequest(err.Error()))
		return
	}

	fieldErrors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fieldErrors[fe.Field()] = fieldMessage(fe)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"timestamp":   time.Now(),
		"status":      http.StatusBadRequest,
		"error":       "Validation Error",
		"fieldErrors": fieldErrors,
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

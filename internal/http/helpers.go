package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/userbooks/internal/logging"
)

// MessageResponse is the body of every error and of plain acknowledgements.
// Messages are fixed strings; error details only go to the log.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondMessage sends a {"message": ...} body with the given status.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// respondFailure logs err with the request's logger and sends message with
// the given status. The error itself never reaches the client.
func respondFailure(c *gin.Context, status int, err error, message string) {
	entry := logging.FromGin(c).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}
	respondMessage(c, status, message)
}

// respondBindFailure logs why a request body was rejected and sends a 400.
func respondBindFailure(c *gin.Context, err error, message string) {
	logging.FromGin(c).WithError(err).WithField("fields", invalidFields(err)).Warn(message)
	respondMessage(c, http.StatusBadRequest, message)
}

// invalidFields lists the struct fields that failed validation, as "Field:tag".
func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
	}
	return fields
}

// parseIDParam extracts a base-10 integer ID from URL parameters.
// On failure it responds 400 with invalidMessage and returns 0, false.
func parseIDParam(c *gin.Context, paramName, invalidMessage string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, invalidMessage)
		return 0, false
	}
	return id, true
}

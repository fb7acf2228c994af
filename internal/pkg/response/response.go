package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// errorBody is the envelope for every failure response.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func fail(c *gin.Context, status int, message, details string) {
	c.AbortWithStatusJSON(status, errorBody{Error: message, Details: details})
}

// OK sends a 200 response. Slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message, "")
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	fail(c, http.StatusUnauthorized, "Unauthorized", "")
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	fail(c, http.StatusNotFound, message, "")
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	fail(c, http.StatusConflict, message, "")
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	fail(c, http.StatusMethodNotAllowed, "Method not allowed", "")
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	fail(c, http.StatusTooManyRequests, "Too many requests", "")
}

// InternalError sends a 500 with a generic message; the underlying error
// text rides along in details for diagnostics.
func InternalError(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	if message == "" {
		message = "Unexpected error"
	}
	fail(c, http.StatusInternalServerError, message, details)
}

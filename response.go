package main

import (
	"errors"
	"net/http"

	"efilling/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// apiError is a domain failure carrying the HTTP status it maps to.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string { return e.Message }

func errBadRequest(msg string) *apiError { return &apiError{Status: http.StatusBadRequest, Message: msg} }
func errUnauthorized(msg string) *apiError {
	return &apiError{Status: http.StatusUnauthorized, Message: msg}
}

// errConflict maps to 400, not 409; the frontend treats duplicates as plain
// bad requests.
func errConflict(msg string) *apiError { return &apiError{Status: http.StatusBadRequest, Message: msg} }

func respondData(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{"status": status, "data": data, "message": message})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": status, "message": message})
}

func respondAbort(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": status, "message": message})
	c.Abort()
}

func respondList(c *gin.Context, items any, meta pagination.Meta) {
	respondData(c, http.StatusOK, gin.H{"paginatedData": items, "meta": meta}, "success")
}

// respondError maps a typed apiError to its status; anything else is a 500
// with the underlying message attached for diagnostics.
func respondError(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		respondMessage(c, ae.Status, ae.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  http.StatusInternalServerError,
		"message": "internal server error",
		"errors":  err.Error(),
	})
}

// respondBindingError enumerates every violated field when the binding layer
// provides them.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  http.StatusBadRequest,
			"message": "validation failed",
			"errors":  fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  http.StatusBadRequest,
		"message": "validation failed",
		"errors":  err.Error(),
	})
}

package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends 200 with an envelope carrying payload under key.
// An empty key sends the bare envelope.
func OK(c *gin.Context, key string, payload any, extra gin.H) {
	JSON(c, http.StatusOK, MessageSuccess, key, payload, extra)
}

// Created sends 201 with the created item under key.
func Created(c *gin.Context, message, key string, payload any) {
	JSON(c, http.StatusCreated, message, key, payload, nil)
}

// JSON sends a success envelope with status.
func JSON(c *gin.Context, status int, message, key string, payload any, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	if key != "" {
		body[key] = payload
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Message sends 200 with only {success: true, message}.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Resp{Success: true, Message: message})
}

// Error sends a failure envelope. *HTTPError keeps its code and message;
// anything else becomes a 500 with DefaultErrorMessage.
func Error(c *gin.Context, err error) {
	var he *HTTPError
	if errors.As(err, &he) {
		c.JSON(he.Code, Resp{Message: he.Message, Errors: he.Errors})
		return
	}
	InternalError(c, err)
}

// InternalError sends 500 internal server error.
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Resp{Message: DefaultErrorMessage})
}

// TooManyRequests sends 429.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{Message: "Too many requests"})
}

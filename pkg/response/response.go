package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The dashboard frontends consume two body shapes: raw payloads on success,
// and {"error": "..."} or {"message": "..."} envelopes otherwise. The helpers
// below keep every handler on that contract.

// OK 200 with a raw payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 with a raw payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Message 200 with a {"message": ...} body.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// CreatedMessage 201 with a {"message": ...} body.
func CreatedMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// ── error responses ──

// Error generic {"error": ...} response.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

// BadRequest 400.
func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg)
}

// Unauthorized 401 with a {"message": ...} body, matching the login contract.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": msg})
}

// Forbidden 403.
func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, msg)
}

// NotFound 404.
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

// UnprocessableEntity 422, for malformed or invalid input.
func UnprocessableEntity(c *gin.Context, msg string) {
	Error(c, http.StatusUnprocessableEntity, msg)
}

// InternalError 500.
func InternalError(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, msg)
}

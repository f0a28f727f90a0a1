package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the standard envelope for all API responses. Business
// failures keep HTTP 200 and signal through Success; 4xx/5xx are reserved
// for transport-level failures (bad method, missing required input before
// any external call).
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondFailure sends a 200 business-failure response. The caller
// distinguishes via the success flag; the message is actionable for the end
// user.
func RespondFailure(c *gin.Context, err error) {
	requestID, _ := c.Get("request_id")
	log.Printf("[%s] extraction failed: %v", requestID, err)
	c.JSON(http.StatusOK, APIResponse{Success: false, Error: err.Error()})
}

// RespondBadRequest sends a 400 for malformed input detected before any
// external call.
func RespondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: msg})
}

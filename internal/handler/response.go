package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soustackgw/internal/domain"
)

// StatusFor maps a protocol response to an HTTP status code. Tool-level
// failures reported inside a successful output are still 200.
func StatusFor(resp *domain.Response) int {
	if resp.OK || resp.Error == nil {
		return http.StatusOK
	}
	switch resp.Error.Code {
	case domain.ErrorCodeInvalidJSON, domain.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case domain.ErrorCodeToolNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes resp with the status derived from it.
func Respond(c *gin.Context, logger *zap.Logger, resp *domain.Response) {
	status := StatusFor(resp)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		logger.Error("tool error",
			zap.Any("request_id", requestID),
			zap.Any("details", resp.Error.Details),
		)
	}
	c.JSON(status, resp)
}

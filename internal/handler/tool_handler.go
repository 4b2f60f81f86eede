package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soustackgw/internal/domain"
	"soustackgw/internal/protocol"
	"soustackgw/internal/tool"
)

// maxBodyBytes bounds a tool call body.
const maxBodyBytes = 16 << 20

// ToolHandler exposes the tool dispatcher over HTTP.
type ToolHandler struct {
	dispatcher *tool.Dispatcher
	logger     *zap.Logger
}

// NewToolHandler creates a new ToolHandler.
func NewToolHandler(dispatcher *tool.Dispatcher, logger *zap.Logger) *ToolHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToolHandler{dispatcher: dispatcher, logger: logger}
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List handles GET /api/v1/tools
// @Summary List tools
// @Tags tools
// @Produce json
// @Success 200 {object} ToolListResponse "Tool catalogue"
// @Security BearerAuth
// @Router /tools [get]
func (h *ToolHandler) List(c *gin.Context) {
	tools := h.dispatcher.Registry().All()
	out := make([]toolInfo, 0, len(tools))
	for _, t := range tools {
		out = append(out, toolInfo{Name: t.Name, Description: t.Description})
	}
	c.JSON(http.StatusOK, gin.H{"tools": out})
}

// Call handles POST /api/v1/tools/:tool
//
// The body is {"id"?: string, "input": object}. Without an id the request id
// assigned by the middleware is used.
//
// @Summary Call a tool
// @Description Runs one tool. Validation problems are reported in output.errors with status 200.
// @Tags tools
// @Accept json
// @Produce json
// @Param tool path string true "Tool name" example(ingest.segment)
// @Param request body ToolCallRequest true "Tool input"
// @Success 200 {object} ToolCallResponse "Tool ran"
// @Failure 400 {object} ToolCallResponse "Invalid JSON or request shape"
// @Failure 404 {object} ToolCallResponse "Unknown tool"
// @Failure 500 {object} ToolCallResponse "Tool execution failed"
// @Security BearerAuth
// @Router /tools/{tool} [post]
func (h *ToolHandler) Call(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		Respond(c, h.logger, domain.Failure(nil, domain.ErrorCodeInvalidJSON, domain.MsgInvalidJSON,
			map[string]any{"error": err.Error()}))
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		Respond(c, h.logger, domain.Failure(nil, domain.ErrorCodeInvalidJSON, domain.MsgInvalidJSON,
			map[string]any{"error": err.Error()}))
		return
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		Respond(c, h.logger, domain.Failure(nil, domain.ErrorCodeInvalidRequest, domain.MsgInvalidRequest, nil))
		return
	}
	if _, present := obj["id"]; !present {
		requestID, _ := c.Get("request_id")
		obj["id"] = requestID
	}
	obj["tool"] = c.Param("tool")

	req, failure := protocol.ParseRequest(obj)
	if failure != nil {
		Respond(c, h.logger, failure)
		return
	}
	Respond(c, h.logger, h.dispatcher.Dispatch(c.Request.Context(), req))
}

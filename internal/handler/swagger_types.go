package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ToolCallRequest represents the body of a tool call.
type ToolCallRequest struct {
	ID    string         `json:"id" example:"req-42"`
	Input map[string]any `json:"input" binding:"required"`
}

// ToolCallError represents the error block of a failed tool call.
type ToolCallError struct {
	Code    string         `json:"code" example:"tool_not_found"`
	Message string         `json:"message" example:"Tool \"nope\" is not available."`
	Details map[string]any `json:"details,omitempty"`
}

// ToolCallResponse represents the envelope returned for every tool call.
type ToolCallResponse struct {
	ID     *string        `json:"id" example:"req-42"`
	OK     bool           `json:"ok" example:"true"`
	Output map[string]any `json:"output,omitempty"`
	Error  *ToolCallError `json:"error,omitempty"`
}

// ToolListResponse represents the tool catalogue.
type ToolListResponse struct {
	Tools []toolInfo `json:"tools"`
}

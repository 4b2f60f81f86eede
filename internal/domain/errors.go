package domain

import (
	"errors"
	"fmt"
)

var (
	ErrToolNotFound      = errors.New("tool not found")
	ErrProviderNotFound  = errors.New("provider module not found")
	ErrStageNotFound     = errors.New("provider stage not found")
	ErrProviderCall      = errors.New("provider call failed")
	ErrMalformedResponse = errors.New("provider returned a malformed response")
	ErrUnauthorized      = errors.New("unauthorized")
)

// Messages carried by protocol-level failures.
const (
	MsgInvalidJSON    = "Input line is not valid JSON."
	MsgInvalidRequest = "Request must be an object with string id, string tool and object input."
	MsgToolError      = "Tool execution failed."
)

// ToolNotFoundMessage formats the message returned for an unknown tool.
func ToolNotFoundMessage(name string) string {
	return fmt.Sprintf("Tool %q is not available.", name)
}

// MapError translates an error returned by a tool handler to a protocol error code.
func MapError(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrToolNotFound):
		return ErrorCodeToolNotFound
	default:
		return ErrorCodeToolError
	}
}

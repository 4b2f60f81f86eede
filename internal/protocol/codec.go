// Package protocol reads and writes the newline-delimited JSON wire format:
// one request object per input line, one response object per output line.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"soustackgw/internal/domain"
)

// IsBlank reports whether line holds only whitespace. Blank lines get no response.
func IsBlank(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

// ParseLine decodes one input line. Exactly one of the results is non-nil:
// the request, or the failure response to write back for the line.
func ParseLine(line []byte) (*domain.Request, *domain.Response) {
	var v any
	if err := json.Unmarshal(bytes.TrimSpace(line), &v); err != nil {
		return nil, domain.Failure(nil, domain.ErrorCodeInvalidJSON, domain.MsgInvalidJSON,
			map[string]any{"error": err.Error()})
	}
	return ParseRequest(v)
}

// ParseRequest shapes a decoded JSON value into a request. It must be an
// object with a string id, a string tool and a non-null object input.
func ParseRequest(v any) (*domain.Request, *domain.Response) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalidRequest()
	}
	id, okID := obj["id"].(string)
	name, okTool := obj["tool"].(string)
	input, okInput := obj["input"].(map[string]any)
	if !okID || !okTool || !okInput || input == nil {
		return nil, invalidRequest()
	}
	return &domain.Request{ID: id, Tool: name, Input: input}, nil
}

func invalidRequest() *domain.Response {
	return domain.Failure(nil, domain.ErrorCodeInvalidRequest, domain.MsgInvalidRequest, nil)
}

// Marshal renders resp as one compact JSON line including the trailing newline.
func Marshal(resp *domain.Response) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode writes resp to w with a single Write call.
func Encode(w io.Writer, resp *domain.Response) error {
	line, err := Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := w.Write(line); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// Package server runs the tool dispatcher over a line-oriented stream.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"soustackgw/internal/domain"
	"soustackgw/internal/protocol"
	"soustackgw/internal/tool"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 16 * 1024 * 1024

// StdioServer reads requests line by line and answers each on its own
// goroutine. Responses are written whole, in completion order.
type StdioServer struct {
	dispatcher *tool.Dispatcher
	logger     *zap.Logger

	mu  sync.Mutex // serializes writes to out
	out io.Writer
}

// NewStdioServer creates a server writing responses to out.
func NewStdioServer(dispatcher *tool.Dispatcher, out io.Writer, logger *zap.Logger) *StdioServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StdioServer{dispatcher: dispatcher, out: out, logger: logger}
}

// Serve reads in until EOF, a read error, or ctx is done, then waits for
// every in-flight request to be answered. A line longer than MaxLineSize is
// discarded and answered with invalid_request; reading continues after it.
func (s *StdioServer) Serve(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReaderSize(in, 64*1024)

	var wg sync.WaitGroup
	defer wg.Wait()

	for ctx.Err() == nil {
		line, tooLong, err := readLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}

		switch {
		case tooLong:
			lineID := ulid.Make().String()
			s.logger.Warn("rejected oversized input line", zap.String("line_id", lineID))
			s.write(lineID, domain.Failure(nil, domain.ErrorCodeInvalidRequest, domain.MsgInvalidRequest,
				map[string]any{"error": fmt.Sprintf("line exceeds %d bytes", MaxLineSize)}))
		case !protocol.IsBlank(line):
			lineID := ulid.Make().String()
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.handle(ctx, lineID, line)
			}()
		}

		if err != nil {
			return nil
		}
	}
	return nil
}

// readLine returns the next line without its terminator. Past MaxLineSize the
// rest of the line is consumed but not kept, and tooLong is set.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, err := r.ReadSlice('\n')
		n := len(chunk)
		if n > 0 && chunk[n-1] == '\n' {
			n--
		}
		if !tooLong {
			if len(line)+n > MaxLineSize {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk[:n]...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}

func (s *StdioServer) handle(ctx context.Context, lineID string, line []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("line handler panicked", zap.String("line_id", lineID), zap.Any("panic", r))
			s.write(lineID, domain.Failure(nil, domain.ErrorCodeToolError, domain.MsgToolError,
				map[string]any{"error": fmt.Sprintf("panic: %v", r)}))
		}
	}()

	req, failure := protocol.ParseLine(line)
	if failure != nil {
		s.logger.Warn("rejected input line",
			zap.String("line_id", lineID),
			zap.String("code", string(failure.Error.Code)),
		)
		s.write(lineID, failure)
		return
	}
	s.write(lineID, s.dispatcher.Dispatch(ctx, req, zap.String("line_id", lineID)))
}

func (s *StdioServer) write(lineID string, resp *domain.Response) {
	line, err := protocol.Marshal(resp)
	if err != nil {
		s.logger.Error("encode response", zap.String("line_id", lineID), zap.Error(err))
		line, _ = protocol.Marshal(domain.Failure(resp.ID, domain.ErrorCodeToolError, domain.MsgToolError,
			map[string]any{"error": err.Error()}))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(line); err != nil {
		s.logger.Error("write response", zap.String("line_id", lineID), zap.Error(err))
	}
}

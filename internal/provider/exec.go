package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// execModule is a provider implemented by an external command. Every
// operation runs the command once, writes one JSON request line to its stdin
// and reads one JSON reply line from its stdout.
//
//	request: {"op":"exports"} | {"op":"call","stage":"segment","args":[...]}
//	reply:   {"ok":true,"exports":[...]} | {"ok":true,"result":...} | {"ok":false,"error":"..."}
type execModule struct {
	command string
	args    []string
	exports map[string]bool
}

type execRequest struct {
	Op    string `json:"op"`
	Stage string `json:"stage,omitempty"`
	Args  []any  `json:"args,omitempty"`
}

type execReply struct {
	OK      bool     `json:"ok"`
	Result  any      `json:"result"`
	Error   string   `json:"error"`
	Exports []string `json:"exports"`
}

func loadExec(ctx context.Context, cmdline string) (Module, error) {
	parts := strings.Fields(cmdline)
	if len(parts) == 0 {
		return nil, errors.New("empty command for exec provider")
	}
	m := &execModule{command: parts[0], args: parts[1:], exports: map[string]bool{}}

	reply, err := m.run(ctx, execRequest{Op: "exports"})
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	for _, name := range reply.Exports {
		m.exports[name] = true
	}
	return m, nil
}

func (m *execModule) Lookup(name string) (any, bool) {
	if !m.exports[name] {
		return nil, false
	}
	return StageFunc(func(ctx context.Context, args ...any) (any, error) {
		reply, err := m.run(ctx, execRequest{Op: "call", Stage: name, Args: args})
		if err != nil {
			return nil, err
		}
		return reply.Result, nil
	}), true
}

func (m *execModule) run(ctx context.Context, req execRequest) (*execReply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.command, m.args...)
	cmd.Stdin = bytes.NewReader(append(payload, '\n'))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", m.command, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", m.command, err)
	}

	reply, err := firstReply(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.command, err)
	}
	if !reply.OK {
		if reply.Error == "" {
			reply.Error = "provider reported failure"
		}
		return nil, errors.New(reply.Error)
	}
	return reply, nil
}

// firstReply decodes the first non-blank line of out.
func firstReply(out []byte) (*execReply, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var reply execReply
		if err := json.Unmarshal(line, &reply); err != nil {
			return nil, fmt.Errorf("decode reply: %w", err)
		}
		return &reply, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New("no reply on stdout")
}

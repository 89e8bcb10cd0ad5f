// Package hook translates the assistant's PreToolUse hook protocol to and
// from application.ToolCall and application.HookResult.
package hook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/abdidvp/testguard/internal/application"
)

// maxStdinBytes caps payload reads. Write payloads carry whole files, so the
// limit is generous.
const maxStdinBytes = 16 << 20

// ErrPayloadTooLarge is returned by Read when the payload exceeds the cap.
var ErrPayloadTooLarge = errors.New("hook payload too large")

// EventPreToolUse is the only hook event testguard answers.
const EventPreToolUse = "PreToolUse"

// Input is the JSON document the assistant sends on stdin.
type Input struct {
	SessionID     string          `json:"session_id"`
	HookEventName string          `json:"hook_event_name"`
	CWD           string          `json:"cwd"`
	ToolName      string          `json:"tool_name"`
	ToolInput     json.RawMessage `json:"tool_input"`
}

type toolInput struct {
	FilePath   string     `json:"file_path"`
	OldString  string     `json:"old_string"`
	NewString  string     `json:"new_string"`
	ReplaceAll bool       `json:"replace_all"`
	Content    string     `json:"content"`
	Edits      []editItem `json:"edits"`
}

type editItem struct {
	OldString  string `json:"old_string"`
	NewString  string `json:"new_string"`
	ReplaceAll bool   `json:"replace_all"`
}

// Output is the JSON document written back on stdout.
type Output struct {
	HookSpecificOutput *SpecificOutput `json:"hookSpecificOutput,omitempty"`
}

type SpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
}

// Read decodes a hook payload from r.
func Read(r io.Reader) (application.ToolCall, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes+1))
	if err != nil {
		return application.ToolCall{}, fmt.Errorf("reading hook payload: %w", err)
	}
	if len(data) > maxStdinBytes {
		return application.ToolCall{}, fmt.Errorf("%w: over %d bytes", ErrPayloadTooLarge, maxStdinBytes)
	}
	return Parse(data)
}

// Parse converts a raw payload into the tool call it describes.
func Parse(data []byte) (application.ToolCall, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return application.ToolCall{}, fmt.Errorf("decoding hook payload: %w", err)
	}

	call := application.ToolCall{Tool: in.ToolName, Cwd: in.CWD}
	if len(in.ToolInput) == 0 {
		return call, nil
	}

	var ti toolInput
	if err := json.Unmarshal(in.ToolInput, &ti); err != nil {
		return application.ToolCall{}, fmt.Errorf("decoding tool_input: %w", err)
	}
	call.FilePath = ti.FilePath

	switch in.ToolName {
	case application.ToolEdit:
		call.Edits = []application.TextEdit{{
			OldString:  ti.OldString,
			NewString:  ti.NewString,
			ReplaceAll: ti.ReplaceAll,
		}}
	case application.ToolMultiEdit:
		for _, e := range ti.Edits {
			call.Edits = append(call.Edits, application.TextEdit(e))
		}
	case application.ToolWrite:
		call.Content = ti.Content
	}
	return call, nil
}

// NewOutput builds the response for res. Allowed calls need no response and
// yield nil.
func NewOutput(res application.HookResult) *Output {
	if res.Decision == application.DecisionAllow {
		return nil
	}
	return &Output{HookSpecificOutput: &SpecificOutput{
		HookEventName:            EventPreToolUse,
		PermissionDecision:       string(res.Decision),
		PermissionDecisionReason: res.Reason,
	}}
}

// Write encodes the response for res to w. Nothing is written for allowed
// calls.
func Write(w io.Writer, res application.HookResult) error {
	out := NewOutput(res)
	if out == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(out)
}

package hook_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/testguard/internal/adapters/inbound/hook"
	"github.com/abdidvp/testguard/internal/application"
)

func TestParse_Edit(t *testing.T) {
	payload := `{
		"session_id": "s1",
		"hook_event_name": "PreToolUse",
		"cwd": "/repo",
		"tool_name": "Edit",
		"tool_input": {"file_path": "/repo/a.test.ts", "old_string": "toBe(1)", "new_string": "toBeTruthy()", "replace_all": true}
	}`
	call, err := hook.Parse([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, application.ToolEdit, call.Tool)
	assert.Equal(t, "/repo", call.Cwd)
	assert.Equal(t, "/repo/a.test.ts", call.FilePath)
	assert.Equal(t, []application.TextEdit{{OldString: "toBe(1)", NewString: "toBeTruthy()", ReplaceAll: true}}, call.Edits)
	assert.Empty(t, call.Content)
}

func TestParse_MultiEdit(t *testing.T) {
	payload := `{"tool_name": "MultiEdit", "tool_input": {"file_path": "a.test.ts", "edits": [
		{"old_string": "a", "new_string": "b"},
		{"old_string": "c", "new_string": "d", "replace_all": true}
	]}}`
	call, err := hook.Parse([]byte(payload))
	require.NoError(t, err)

	require.Len(t, call.Edits, 2)
	assert.Equal(t, "a", call.Edits[0].OldString)
	assert.False(t, call.Edits[0].ReplaceAll)
	assert.True(t, call.Edits[1].ReplaceAll)
}

func TestParse_Write(t *testing.T) {
	call, err := hook.Parse([]byte(`{"tool_name": "Write", "tool_input": {"file_path": "a.test.ts", "content": "x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "x", call.Content)
	assert.Nil(t, call.Edits)
}

func TestParse_OtherTool(t *testing.T) {
	call, err := hook.Parse([]byte(`{"tool_name": "Bash", "tool_input": {"command": "ls"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Bash", call.Tool)
	assert.Empty(t, call.FilePath)
}

func TestParse_Invalid(t *testing.T) {
	_, err := hook.Parse([]byte("not json"))
	assert.Error(t, err)

	_, err = hook.Parse([]byte(`{"tool_name": "Edit", "tool_input": "oops"}`))
	assert.ErrorContains(t, err, "tool_input")
}

func TestRead(t *testing.T) {
	call, err := hook.Read(strings.NewReader(`{"tool_name": "Write", "cwd": "/x"}`))
	require.NoError(t, err)
	assert.Equal(t, "/x", call.Cwd)
}

type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = ' '
	}
	return len(p), nil
}

func TestRead_PayloadTooLarge(t *testing.T) {
	_, err := hook.Read(endlessReader{})
	assert.ErrorIs(t, err, hook.ErrPayloadTooLarge)
}

func TestRead_LargeWriteWithinCap(t *testing.T) {
	content := strings.Repeat("expect(x).toBe(1);\n", 1<<16)
	data, err := json.Marshal(map[string]interface{}{
		"tool_name":  "Write",
		"tool_input": map[string]string{"file_path": "big.test.ts", "content": content},
	})
	require.NoError(t, err)
	require.Greater(t, len(data), 1<<20)

	call, err := hook.Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, content, call.Content)
}

func TestWrite_Deny(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, hook.Write(&buf, application.HookResult{
		Decision: application.DecisionDeny,
		Reason:   "weakened",
	}))

	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	out := got["hookSpecificOutput"]
	assert.Equal(t, "PreToolUse", out["hookEventName"])
	assert.Equal(t, "deny", out["permissionDecision"])
	assert.Equal(t, "weakened", out["permissionDecisionReason"])
}

func TestWrite_Ask(t *testing.T) {
	out := hook.NewOutput(application.HookResult{Decision: application.DecisionAsk, Reason: "r"})
	require.NotNil(t, out)
	assert.Equal(t, "ask", out.HookSpecificOutput.PermissionDecision)
}

func TestWrite_AllowIsSilent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, hook.Write(&buf, application.HookResult{Decision: application.DecisionAllow}))
	assert.Empty(t, buf.String())
}

package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abdidvp/testguard/internal/adapters/outbound/parser"
	"github.com/abdidvp/testguard/internal/adapters/outbound/report"
	"github.com/abdidvp/testguard/internal/domain"
	"github.com/abdidvp/testguard/internal/domain/detect"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, schema string) *jsonschema.Schema {
	t.Helper()
	sch, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	require.NoError(t, err, "schema must be valid JSON")
	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("schema.json", sch))
	compiled, err := compiler.Compile("schema.json")
	require.NoError(t, err)
	return compiled
}

func validate(t *testing.T, sch *jsonschema.Schema, data []byte) {
	t.Helper()
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	require.NoError(t, err)
	assert.NoError(t, sch.Validate(inst), "output does not conform to schema:\n%s", data)
}

func sampleReports(t *testing.T) []*domain.Report {
	t.Helper()
	d, err := detect.New(parser.New(), domain.DefaultConfig())
	require.NoError(t, err)
	return []*domain.Report{
		d.Analyze(
			"it('a', () => {\n  expect(x).toBe(1);\n  expect(y).toEqual('ok');\n});\n",
			"it.only('a', () => {\n  expect(x).toBeTruthy();\n  expect(y).toEqual(null);\n});\n",
			"all.test.ts",
		),
		d.Analyze("describe('x', () => {\n", "describe.skip('x', () => {\n", "broken.test.js"),
		d.Analyze("expect(a).toBe(1);\n", "expect(a).toBe(1);\n", ""),
	}
}

func TestWriteJSON_ValidAgainstSchema(t *testing.T) {
	sch := compile(t, report.Schema)
	for _, r := range sampleReports(t) {
		var buf bytes.Buffer
		require.NoError(t, report.WriteJSON(&buf, r))
		validate(t, sch, buf.Bytes())
	}
}

func TestWriteJSON_NilViolationsBecomeEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, &domain.Report{Analysis: domain.AnalysisFull}))
	assert.Contains(t, buf.String(), `"violations": []`)
	validate(t, compile(t, report.Schema), buf.Bytes())
}

func TestWriteJSON_Fields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, sampleReports(t)[0]))

	var got struct {
		File       string `json:"file"`
		Analysis   string `json:"analysis"`
		Violations []struct {
			Category string `json:"category"`
			Severity string `json:"severity"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "all.test.ts", got.File)
	assert.Equal(t, "full", got.Analysis)
	require.Len(t, got.Violations, 4)
	assert.Equal(t, "WEAKENED_ASSERTIONS", got.Violations[0].Category)
	assert.Equal(t, "CRITICAL", got.Violations[0].Severity)
}

func TestWriteCheckJSON_ValidAgainstSchema(t *testing.T) {
	sch := compile(t, report.CheckSchema)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCheckJSON(&buf, sampleReports(t), "1.0.0"))
	validate(t, sch, buf.Bytes())

	buf.Reset()
	require.NoError(t, report.WriteCheckJSON(&buf, nil, "1.0.0"))
	assert.Contains(t, buf.String(), `"files": []`)
	validate(t, sch, buf.Bytes())
}

func TestSchema_RejectsUnknownCategory(t *testing.T) {
	sch := compile(t, report.Schema)
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(
		`{"analysis":"full","violations":[{"category":"SNEAKY","severity":"CRITICAL","message":"m","details":[{"line":1}]}]}`))
	require.NoError(t, err)
	assert.Error(t, sch.Validate(inst))
}

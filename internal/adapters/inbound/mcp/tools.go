package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/testguard/internal/application"
	"github.com/abdidvp/testguard/internal/domain"
)

func registerTools(s *server.MCPServer, projectPath string, detector *application.DetectService) {
	s.AddTool(
		mcplib.NewTool("testguard_detect",
			mcplib.WithDescription("Compare two versions of a JavaScript or TypeScript test file and report weakened assertions, removed test logic, test avoidance and expectation adjustments"),
			mcplib.WithString("old_content",
				mcplib.Required(),
				mcplib.Description("Test file content before the change"),
			),
			mcplib.WithString("new_content",
				mcplib.Required(),
				mcplib.Description("Test file content after the change"),
			),
			mcplib.WithString("file", mcplib.Description("Path of the test file, used as the report label")),
			mcplib.WithString("project_path", mcplib.Description("Project root whose .testguard.yaml applies (defaults to the server's project)")),
		),
		handleDetect(projectPath, detector),
	)

	s.AddTool(
		mcplib.NewTool("testguard_rules",
			mcplib.WithDescription("Returns the effective detection rules: matcher classes, suspicious literals, avoidance and mocking patterns"),
			mcplib.WithString("project_path", mcplib.Description("Project root whose .testguard.yaml applies")),
		),
		handleRules(projectPath, detector),
	)
}

func handleDetect(projectPath string, detector *application.DetectService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		oldContent, err := request.RequireString("old_content")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		newContent, err := request.RequireString("new_content")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		edit := domain.FileEdit{
			Path:       request.GetString("file", ""),
			OldContent: oldContent,
			NewContent: newContent,
		}
		report, err := detector.Detect(projectFor(request, projectPath), edit, application.SourceMCP)
		if err != nil {
			return errorResult(fmt.Sprintf("detection failed: %v", err)), nil
		}
		if report.Violations == nil {
			report.Violations = []domain.Violation{}
		}
		return jsonResult(report)
	}
}

func handleRules(projectPath string, detector *application.DetectService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := detector.Rules(projectFor(request, projectPath))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(cfg)
	}
}

func projectFor(request mcplib.CallToolRequest, fallback string) string {
	if p := request.GetString("project_path", ""); p != "" {
		return p
	}
	return fallback
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

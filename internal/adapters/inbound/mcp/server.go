package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/testguard/internal/application"
)

// NewTestguardMCPServer creates an MCP server exposing the detector as tools
// and the project's rules and report schema as resources. projectPath is the
// default root used to load .testguard.yaml.
func NewTestguardMCPServer(projectPath, version string, detector *application.DetectService) *server.MCPServer {
	s := server.NewMCPServer(
		"testguard",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, detector)
	registerResources(s, projectPath, detector)

	return s
}

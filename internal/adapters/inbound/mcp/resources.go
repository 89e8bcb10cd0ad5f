package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/testguard/internal/adapters/outbound/report"
	"github.com/abdidvp/testguard/internal/application"
)

const (
	rulesURI  = "testguard://rules"
	schemaURI = "testguard://schema"
)

func registerResources(s *server.MCPServer, projectPath string, detector *application.DetectService) {
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Detection Rules",
			mcplib.WithResourceDescription("Effective detection rules for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(projectPath, detector),
	)

	s.AddResource(
		mcplib.NewResource(
			schemaURI,
			"Report Schema",
			mcplib.WithResourceDescription("JSON Schema of the report returned by testguard_detect"),
			mcplib.WithMIMEType("application/schema+json"),
		),
		handleSchemaResource,
	)
}

func handleRulesResource(projectPath string, detector *application.DetectService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := detector.Rules(projectPath)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      rulesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleSchemaResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      schemaURI,
			MIMEType: "application/schema+json",
			Text:     report.Schema,
		},
	}, nil
}

package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/blog-portal/internal/client"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult renders v as indented JSON text content.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// operationError renders a failed operation. Backend errors carry the server message.
func operationError(err error) *mcp.CallToolResult {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return errorResult(fmt.Sprintf("Error: %s (status %d)", apiErr.Message, apiErr.StatusCode))
	}
	var tErr *client.TransportError
	if errors.As(err, &tErr) {
		return errorResult(fmt.Sprintf("Backend unreachable: %v", tErr.Err))
	}
	return errorResult(fmt.Sprintf("Error: %v", err))
}

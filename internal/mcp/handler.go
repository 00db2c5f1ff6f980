// Package mcp exposes the blog operations and client state as MCP tools over
// streamable HTTP or stdio.
package mcp

import (
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/config"
	"github.com/bobmcallan/blog-portal/internal/session"
)

// UserIDHeader names the request header that sets the session user id
// alongside a Bearer token.
const UserIDHeader = "X-Blog-User-Id"

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	server     *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler builds the MCP server with every tool registered.
func NewHandler(cfg *config.Config, tools *Tools, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		cfg.MCP.Name,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	toolCount := tools.Register(mcpSrv)
	mcpSrv.AddTool(VersionTool(), VersionToolHandler(cfg.API.URL))

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount+1).
		Str("api_url", cfg.API.URL).
		Msg("MCP handler initialized")

	return &Handler{
		server:     mcpSrv,
		streamable: streamable,
		logger:     logger,
	}
}

// MCPServer returns the underlying MCP server.
func (h *Handler) MCPServer() *mcpserver.MCPServer {
	return h.server
}

// ServeStdio serves MCP over stdin/stdout until EOF.
func (h *Handler) ServeStdio() error {
	return mcpserver.ServeStdio(h.server)
}

// ServeHTTP applies a Bearer token session override (if present) and
// delegates to the mcp-go StreamableHTTPServer. Without a token, tools act
// as the persisted login.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, withSession(r))
}

func withSession(r *http.Request) *http.Request {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return r
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if token == "" {
		return r
	}
	sess := session.Session{Token: token, UserID: r.Header.Get(UserIDHeader)}
	return r.WithContext(WithSession(r.Context(), sess))
}

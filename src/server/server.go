// Package server assembles the MCP server and its transports.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gh-project-manager/gh-project-manager-mcp/src/tools"
)

const (
	// Name is the server name advertised during MCP initialization.
	Name = "gh-project-manager-mcp"
	// Version is the advertised server version.
	Version = "0.8.1"
)

// New builds an MCP server with every tool wrapper registered.
func New(d tools.Deps) *server.MCPServer {
	srv := server.NewMCPServer(Name, Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tools.RegisterAll(srv, d)
	return srv
}

// ServeStdio runs the server over stdin/stdout until the stream closes.
func ServeStdio(srv *server.MCPServer) error {
	return server.ServeStdio(srv)
}

// ServeHTTP runs the server as a streamable HTTP endpoint on addr.
func ServeHTTP(srv *server.MCPServer, addr string) error {
	httpSrv := server.NewStreamableHTTPServer(srv)
	return httpSrv.Start(addr)
}

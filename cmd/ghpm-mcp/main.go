// Command ghpm-mcp exposes GitHub CLI project management operations as
// MCP tools over stdio or streamable HTTP.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gh-project-manager/gh-project-manager-mcp/src/config"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/executor"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/resolver"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/server"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/tools"
)

func main() {
	transport := flag.String("transport", "stdio", "transport to serve on: stdio or http")
	addr := flag.String("addr", ":8080", "listen address for the http transport")
	configPath := flag.String("config", "", "optional YAML file overlaying the default parameter table")
	timeout := flag.Duration("timeout", executor.DefaultTimeout, "per-command timeout for gh invocations")
	verbose := flag.Bool("verbose", false, "log resolver and executor diagnostics to stderr")
	flag.Parse()

	// A .env next to the binary is a convenience for local runs; its
	// absence is not an error.
	_ = godotenv.Load()

	if _, ok := config.Token(os.LookupEnv); !ok {
		fmt.Fprintln(os.Stderr, "ghpm-mcp: GitHub token not found. Set GITHUB_TOKEN or GH_TOKEN.")
		os.Exit(1)
	}

	table, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghpm-mcp: loading config %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	var logger func(format string, args ...interface{})
	if *verbose {
		logger = log.New(os.Stderr, "ghpm-mcp: ", log.LstdFlags).Printf
	}

	srv := server.New(tools.Deps{
		Resolver: resolver.New(table, logger),
		Runner:   executor.New(logger, executor.WithTimeout(*timeout)),
	})

	switch *transport {
	case "stdio":
		err = server.ServeStdio(srv)
	case "http":
		fmt.Fprintf(os.Stderr, "ghpm-mcp: listening on %s\n", *addr)
		err = server.ServeHTTP(srv, *addr)
	default:
		fmt.Fprintf(os.Stderr, "ghpm-mcp: unknown transport %q\n", *transport)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghpm-mcp: %v\n", err)
		os.Exit(1)
	}
}

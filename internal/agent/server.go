// Package agent serves the use cases as MCP tools over stdio, for
// invocation by an LLM agent.
package agent

import (
	"context"
	"encoding/json"
	"io"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/app"
)

const (
	serverName    = "pastry-manager"
	serverVersion = "1.0.0"
)

// Server exposes the application's use cases as MCP tools.
type Server struct {
	app    *app.App
	logger log.FieldLogger
	mcp    *server.MCPServer
}

func NewServer(a *app.App, logger log.FieldLogger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &Server{app: a, logger: logger}

	hooks := &server.Hooks{}
	hooks.AddOnError(func(_ context.Context, id any, method mcp.MCPMethod, _ any, err error) {
		logger.WithError(err).WithFields(log.Fields{"id": id, "method": method}).Warn("MCP request failed")
	})

	s.mcp = server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)
	for _, t := range tools() {
		s.mcp.AddTool(t.definition, s.handler(t.definition.Name, t.call))
	}
	return s
}

// Serve speaks MCP over line-delimited JSON-RPC on r and w until r is
// exhausted or ctx is done.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	errLog := errorWriter(s.logger)
	defer errLog.Close()

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(errLog, "", 0))
	return stdio.Listen(ctx, r, w)
}

// handler adapts a tool to MCP: the envelope is the single text content item.
func (s *Server) handler(name string, call toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		env, err := s.invoke(ctx, name, call, req.Params.Arguments)
		if err != nil {
			var argErr *argumentError
			if !errors.As(err, &argErr) {
				s.logger.WithError(err).Errorf("Error executing %s tool", name)
			}
			env = Envelope{Error: err.Error()}
		}

		text, err := json.Marshal(env)
		if err != nil {
			s.logger.WithError(err).Errorf("Failed to encode %s result", name)
			text = []byte(`{"success":false,"error":"failed to encode result"}`)
		}
		res := mcp.NewToolResultText(string(text))
		res.IsError = !env.Success
		return res, nil
	}
}

func (s *Server) invoke(ctx context.Context, name string, call toolFunc, arguments any) (Envelope, error) {
	raw, err := json.Marshal(arguments)
	if err != nil {
		return Envelope{}, &argumentError{msg: "Invalid arguments: " + err.Error()}
	}
	s.logger.WithField("tool", name).Debug("Calling tool")
	return call(ctx, s.app, raw)
}

type levelWriter interface {
	WriterLevel(level log.Level) *io.PipeWriter
}

// errorWriter routes the transport's own diagnostics into logrus.
func errorWriter(logger log.FieldLogger) *io.PipeWriter {
	if lw, ok := logger.(levelWriter); ok {
		return lw.WriterLevel(log.ErrorLevel)
	}
	return log.StandardLogger().WriterLevel(log.ErrorLevel)
}

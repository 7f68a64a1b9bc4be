// Package mcp exposes a dialogue resource over the Model Context Protocol,
// letting agent hosts drive walks through next_line and list_titles tools.
// Sessions live in a SessionStore keyed by a caller-chosen ID.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/parleykit/parley/internal/binding"
	"github.com/parleykit/parley/internal/eval"
	"github.com/parleykit/parley/internal/runtime"
	"github.com/parleykit/parley/pkg/domain"
	"github.com/parleykit/parley/pkg/ports"
	"github.com/parleykit/parley/pkg/state"
)

// NextLineResult is the structured payload of the next_line tool.
type NextLineResult struct {
	Line     *domain.DialogueLine `json:"line,omitempty" jsonschema_description:"The next printable line, absent when the dialogue has finished"`
	Finished bool                 `json:"finished" jsonschema_description:"True when the dialogue has reached its end"`
}

// TitlesResult is the structured payload of the list_titles tool.
type TitlesResult struct {
	Titles []string `json:"titles" jsonschema_description:"The entry titles of the loaded dialogue resource"`
}

// Server wraps a dialogue resource and a session store as an MCP server.
type Server struct {
	resource  *domain.Resource
	store     ports.SessionStore
	logger    *slog.Logger
	version   string
	mcpServer *server.MCPServer
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server over a resource and a session store.
func NewServer(res *domain.Resource, store ports.SessionStore, version string, opts ...ServerOption) *Server {
	s := &Server{
		resource: res,
		store:    store,
		logger:   slog.New(slog.DiscardHandler),
		version:  version,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer("parley-mcp", s.version)
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	nextLineTool := mcp.NewTool("next_line",
		mcp.WithDescription("Advance a dialogue session by one line. Pass key to start or jump; omit it to resume from the session cursor."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier; created on first use")),
		mcp.WithString("key", mcp.Description("Title or line key to evaluate (optional after the first call)")),
		mcp.WithOutputSchema[NextLineResult](),
	)
	s.mcpServer.AddTool(nextLineTool, mcp.NewStructuredToolHandler(s.handleNextLine))

	titlesTool := mcp.NewTool("list_titles",
		mcp.WithDescription("List the entry titles of the loaded dialogue resource."),
		mcp.WithOutputSchema[TitlesResult](),
	)
	s.mcpServer.AddTool(titlesTool, mcp.NewStructuredToolHandler(s.handleListTitles))
}

func (s *Server) handleNextLine(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (NextLineResult, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return NextLineResult{}, errors.New("session_id is required")
	}

	session, err := s.store.Load(ctx, sessionID)
	fresh := errors.Is(err, domain.ErrSessionNotFound)
	if fresh {
		session = domain.NewSession("")
	} else if err != nil {
		return NextLineResult{}, err
	}

	key, _ := args["key"].(string)
	if key == "" {
		key = session.Cursor
	}
	if key == "" {
		if fresh {
			return NextLineResult{}, errors.New("no key to start from; pass one")
		}
		// An existing session with an empty cursor has already finished.
		return NextLineResult{Finished: true}, nil
	}

	vars := state.NewMap(session.Vars)
	binder := binding.New(false, vars)
	engine := runtime.NewEngine(eval.New(binder, s.logger),
		runtime.WithDefaultResource(s.resource),
		runtime.WithLogger(s.logger),
	)

	line, err := engine.NextLine(ctx, key, nil)
	if err != nil {
		return NextLineResult{}, err
	}

	session.Vars = vars.Snapshot()
	for k, v := range binder.ShadowSnapshot() {
		session.Vars[k] = v
	}
	session.Cursor = ""
	if line != nil {
		session.Cursor = line.NextID
	}
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return NextLineResult{}, err
	}

	return NextLineResult{Line: line, Finished: line == nil}, nil
}

func (s *Server) handleListTitles(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (TitlesResult, error) {
	titles := make([]string, 0, len(s.resource.Titles))
	for title := range s.resource.Titles {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return TitlesResult{Titles: titles}, nil
}

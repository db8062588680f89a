package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/vestibule"
	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GuidesURI is the resource exposing the roster.
const GuidesURI = "vestibule://guides"

// Engine defines what the MCP server reads from the Vestibule engine.
type Engine interface {
	Guides() []domain.Guide
	Selected(ctx context.Context, key string) (string, error)
	Resolver() *assets.Resolver
}

// Server exposes onboarding sessions as MCP tools, so an agent can walk a visitor
// through the flow.
type Server struct {
	engine    Engine
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		logger:   logging.NewNop(),
		mcpServer: server.NewMCPServer("vestibule-mcp", strings.TrimSpace(vestibule.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// GuideList is the structured output of list_guides.
type GuideList struct {
	Guides []onboarding.Card `json:"guides" jsonschema_description:"The roster in canonical order"`
}

// SessionArgs addresses a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// GuideArgs addresses a guide within a session.
type GuideArgs struct {
	SessionID string `json:"session_id"`
	GuideID   string `json:"guide_id"`
}

// StartArgs are the arguments of start_onboarding.
type StartArgs struct {
	SessionID  string `json:"session_id"`
	VisitorID  string `json:"visitor_id"`
	Capability string `json:"capability"`
}

// EndResult is the structured output of end_session.
type EndResult struct {
	SessionID string `json:"session_id"`
	Ended     bool   `json:"ended"`
}

// SelectionResult is the structured output of get_selection.
type SelectionResult struct {
	VisitorID string `json:"visitor_id,omitempty"`
	GuideID   string `json:"guide_id"`
}

func (s *Server) registerTools() {
	sessionID := mcp.WithString("session_id", mcp.Required(), mcp.Description("Onboarding session ID"))
	guideID := mcp.WithString("guide_id", mcp.Required(), mcp.Description("Guide ID as returned by list_guides"))

	s.mcpServer.AddTool(mcp.NewTool("list_guides",
		mcp.WithDescription("List the guides a visitor can choose from."),
		mcp.WithOutputSchema[GuideList](),
	), mcp.NewStructuredToolHandler(s.handleListGuides))

	s.mcpServer.AddTool(mcp.NewTool("start_onboarding",
		mcp.WithDescription("Start an onboarding session at the welcome step. The guide order is shuffled once per session."),
		mcp.WithString("session_id", mcp.Description("Session ID (generated when omitted)")),
		mcp.WithString("visitor_id", mcp.Description("Scope the stored selection to this visitor")),
		mcp.WithString("capability", mcp.Description("Input capability of the visitor"), mcp.Enum("pointer", "touch")),
		mcp.WithOutputSchema[onboarding.View](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("proceed",
		mcp.WithDescription("Leave the welcome step and show the guides."),
		sessionID,
		mcp.WithOutputSchema[onboarding.View](),
	), mcp.NewStructuredToolHandler(s.session(func(f *onboarding.Flow, _ string) error { return f.Proceed() })))

	s.mcpServer.AddTool(mcp.NewTool("preview_guide",
		mcp.WithDescription("Show a guide's philosophy and magistry without selecting it."),
		sessionID, guideID,
		mcp.WithOutputSchema[onboarding.View](),
	), mcp.NewStructuredToolHandler(s.guide(preview)))

	s.mcpServer.AddTool(mcp.NewTool("activate_guide",
		mcp.WithDescription("Click or tap a guide. A pointer click selects; on touch the first tap previews and a second tap selects."),
		sessionID, guideID,
		mcp.WithOutputSchema[onboarding.View](),
	), mcp.NewStructuredToolHandler(s.guide(func(f *onboarding.Flow, id string) error { return f.Activate(id) })))

	s.mcpServer.AddTool(mcp.NewTool("confirm_guide",
		mcp.WithDescription("Confirm the selected guide and reveal the welcome message."),
		sessionID,
		mcp.WithOutputSchema[onboarding.View](),
	), mcp.NewStructuredToolHandler(s.session(func(f *onboarding.Flow, _ string) error { return f.Confirm() })))

	s.mcpServer.AddTool(mcp.NewTool("return_to_choose",
		mcp.WithDescription("Go back from confirmation to the guide list."),
		sessionID,
		mcp.WithOutputSchema[onboarding.View](),
	), mcp.NewStructuredToolHandler(s.session(func(f *onboarding.Flow, _ string) error { return f.Return() })))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get the current view of a session."),
		sessionID,
		mcp.WithOutputSchema[onboarding.View](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("End a session. A pending completion is cancelled."),
		sessionID,
		mcp.WithOutputSchema[EndResult](),
	), mcp.NewStructuredToolHandler(s.handleEnd))

	s.mcpServer.AddTool(mcp.NewTool("get_selection",
		mcp.WithDescription("Get the guide stored for a visitor, or the default selection when visitor_id is omitted."),
		mcp.WithString("visitor_id", mcp.Description("Visitor ID used when the session was started")),
		mcp.WithOutputSchema[SelectionResult](),
	), mcp.NewStructuredToolHandler(s.handleSelection))
}

// preview is a hover on pointer devices and a first tap on touch devices.
// A touch preview of the guide already previewed is a no-op rather than a selection.
func preview(f *onboarding.Flow, id string) error {
	if f.Capability() != domain.CapabilityTouch {
		return f.Hover(id)
	}
	if f.State().PreviewFor == id && f.Step() == domain.StepChoose {
		return nil
	}
	return f.Activate(id)
}

func (s *Server) handleListGuides(ctx context.Context, request mcp.CallToolRequest, args struct{}) (GuideList, error) {
	resolver := s.engine.Resolver()
	var out GuideList
	for _, g := range s.engine.Guides() {
		url := g.Image
		if resolver != nil {
			url = resolver.Resolve(g.Image)
		}
		out.Guides = append(out.Guides, onboarding.Card{Guide: g, ImageURL: url})
	}
	return out, nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args StartArgs) (onboarding.View, error) {
	c, err := domain.ParseCapability(args.Capability)
	if err != nil {
		return onboarding.View{}, err
	}
	opts := []onboarding.Option{onboarding.WithCapability(c)}
	if args.VisitorID != "" {
		opts = append(opts, onboarding.WithSelectionKey(domain.VisitorSelectionKey(args.VisitorID)))
	}
	flow, err := s.sessions.Start(ctx, args.SessionID, opts...)
	if err != nil {
		return onboarding.View{}, err
	}
	return flow.View(), nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (onboarding.View, error) {
	flow, err := s.sessions.Get(ctx, args.SessionID)
	if err != nil {
		return onboarding.View{}, err
	}
	return flow.View(), nil
}

func (s *Server) handleEnd(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (EndResult, error) {
	if err := s.sessions.End(ctx, args.SessionID); err != nil {
		return EndResult{}, err
	}
	return EndResult{SessionID: args.SessionID, Ended: true}, nil
}

func (s *Server) handleSelection(ctx context.Context, request mcp.CallToolRequest, args struct {
	VisitorID string `json:"visitor_id"`
}) (SelectionResult, error) {
	id, err := s.engine.Selected(ctx, domain.VisitorSelectionKey(args.VisitorID))
	if err != nil {
		return SelectionResult{}, err
	}
	return SelectionResult{VisitorID: args.VisitorID, GuideID: id}, nil
}

func (s *Server) session(fn func(*onboarding.Flow, string) error) mcp.StructuredToolHandlerFunc[SessionArgs, onboarding.View] {
	return func(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (onboarding.View, error) {
		return s.do(ctx, args.SessionID, "", fn)
	}
}

func (s *Server) guide(fn func(*onboarding.Flow, string) error) mcp.StructuredToolHandlerFunc[GuideArgs, onboarding.View] {
	return func(ctx context.Context, request mcp.CallToolRequest, args GuideArgs) (onboarding.View, error) {
		return s.do(ctx, args.SessionID, args.GuideID, fn)
	}
}

func (s *Server) do(ctx context.Context, sessionID, guideID string, fn func(*onboarding.Flow, string) error) (onboarding.View, error) {
	flow, err := s.sessions.Do(ctx, sessionID, func(f *onboarding.Flow) error {
		return fn(f, guideID)
	})
	if err != nil {
		s.logger.Debug("MCP tool rejected", "session_id", sessionID, "guide_id", guideID, "err", err)
		return onboarding.View{}, err
	}
	return flow.View(), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GuidesURI, "Guide roster",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.engine.Guides())
		if err != nil {
			return nil, fmt.Errorf("failed to encode roster: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GuidesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

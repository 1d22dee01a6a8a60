// Package mcp exposes a running application's inspection bridge as a
// Model Context Protocol server, so AI agents can inspect and drive the
// UI as tools. It runs in its own process and reaches the application
// over the bridge's loopback HTTP surface.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/glimpse-dev/glimpse"
)

// Server wraps a bridge client and exposes it as an MCP server.
type Server struct {
	client    *Client
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates an MCP server talking to the bridge at bridgeURL.
func NewServer(bridgeURL string, logger *slog.Logger) *Server {
	s := &Server{
		client:    NewClient(bridgeURL),
		mcpServer: server.NewMCPServer("glimpse-mcp", strings.TrimSpace(glimpse.Version)),
		logger:    logger,
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// decodeArgs maps loosely-typed JSON tool arguments onto a params struct.
// Weak typing absorbs the float64 numbers JSON decoding produces.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

type selectorParams struct {
	Selector string `mapstructure:"selector"`
}

type queryParams struct {
	Selector string `mapstructure:"selector"`
	Mode     string `mapstructure:"mode"`
	Attr     string `mapstructure:"attr"`
}

type domParams struct {
	Selector string `mapstructure:"selector"`
	MaxDepth int    `mapstructure:"max_depth"`
	MaxNodes int    `mapstructure:"max_nodes"`
}

type classesParams struct {
	Classes []string `mapstructure:"classes"`
}

type screenshotParams struct {
	Path string `mapstructure:"path"`
}

type typeTextParams struct {
	Selector string `mapstructure:"selector"`
	Text     string `mapstructure:"text"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("status",
		mcp.WithDescription("Check whether the application's inspection bridge is reachable."),
	), s.handleStatus)

	s.mcpServer.AddTool(mcp.NewTool("eval",
		mcp.WithDescription("Execute raw script text in the application's document context."),
		mcp.WithString("script", mcp.Required(), mcp.Description("Script text to evaluate")),
	), s.handleEval)

	s.mcpServer.AddTool(mcp.NewTool("query",
		mcp.WithDescription("Extract a value from the first element matching a CSS selector."),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector")),
		mcp.WithString("mode", mcp.Description("What to extract: text (default), html, value, or attr")),
		mcp.WithString("attr", mcp.Description("Attribute name, required for mode 'attr'")),
	), s.handleQuery)

	s.mcpServer.AddTool(mcp.NewTool("query_all",
		mcp.WithDescription("List every element matching a CSS selector with tag, id, class and text."),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector")),
	), s.handleQueryAll)

	s.mcpServer.AddTool(mcp.NewTool("get_dom",
		mcp.WithDescription("Get a budget-bounded projection of the document tree as JSON."),
		mcp.WithString("selector", mcp.Description("Root the projection at the first match (optional)")),
		mcp.WithNumber("max_depth", mcp.Description("Depth budget, default 10, max 50")),
		mcp.WithNumber("max_nodes", mcp.Description("Node budget, default 500, max 5000")),
	), s.handleDom)

	s.mcpServer.AddTool(mcp.NewTool("inspect",
		mcp.WithDescription("Analyze why an element is or is not visible: geometry, style, findings."),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector")),
	), s.handleInspect)

	s.mcpServer.AddTool(mcp.NewTool("validate_classes",
		mcp.WithDescription("Check whether CSS classes are defined by any accessible style rule."),
		mcp.WithArray("classes", mcp.Required(),
			mcp.Description("Class names to check, without leading dots"),
			mcp.Items(map[string]any{"type": "string"})),
	), s.handleValidateClasses)

	s.mcpServer.AddTool(mcp.NewTool("diagnose",
		mcp.WithDescription("Run an aggregate visibility/health scan over the whole document."),
	), s.handleDiagnose)

	s.mcpServer.AddTool(mcp.NewTool("screenshot",
		mcp.WithDescription("Capture the application window to a PNG file."),
		mcp.WithString("path", mcp.Description("Output file path (optional)")),
	), s.handleScreenshot)

	s.mcpServer.AddTool(mcp.NewTool("click",
		mcp.WithDescription("Click the first element matching a CSS selector."),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector")),
	), s.handleClick)

	s.mcpServer.AddTool(mcp.NewTool("type_text",
		mcp.WithDescription("Set an input's value and fire its input event."),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector of the input")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to type")),
	), s.handleTypeText)
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.client.Status(ctx)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Bridge not available: %v. Start the application with the inspector enabled.", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Connected: %s (%s), pid %d, up %s",
		info.App, info.Status, info.PID, info.UptimeHuman)), nil
}

func (s *Server) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Script string `mapstructure:"script"`
	}
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.Eval(ctx, params.Script))
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params queryParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.Query(ctx, params.Selector, params.Mode, params.Attr))
}

func (s *Server) handleQueryAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params selectorParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.Eval(ctx, queryAllScript(params.Selector)))
}

func (s *Server) handleDom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.Dom(ctx, params.Selector, params.MaxDepth, params.MaxNodes))
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params selectorParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.Inspect(ctx, params.Selector))
}

func (s *Server) handleValidateClasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params classesParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.ValidateClasses(ctx, params.Classes))
}

func (s *Server) handleDiagnose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.textResult(s.client.Diagnose(ctx))
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params screenshotParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := s.client.Screenshot(ctx, params.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Screenshot saved: " + path), nil
}

func (s *Server) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params selectorParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.Eval(ctx, clickScript(params.Selector)))
}

func (s *Server) handleTypeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params typeTextParams
	if err := decodeArgs(request.GetArguments(), &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.textResult(s.client.Eval(ctx, typeTextScript(params.Selector, params.Text)))
}

func (s *Server) textResult(result string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		s.logger.Debug("tool call failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

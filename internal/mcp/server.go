package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/wordrank/internal/analysis"
	"github.com/Aman-CERP/wordrank/internal/config"
	"github.com/Aman-CERP/wordrank/internal/metrics"
	"github.com/Aman-CERP/wordrank/internal/report"
	"github.com/Aman-CERP/wordrank/pkg/version"
)

// ServerName is the implementation name announced to clients.
const ServerName = "wordrank"

// Server exposes word ranking to MCP clients.
type Server struct {
	mcp     *mcp.Server
	config  *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewServer creates a server using cfg for tokenizer, index, sort and input
// limits. A nil cfg uses defaults; m may be nil.
func NewServer(cfg *config.Config, m *metrics.Metrics) (*Server, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if _, err := analysis.ParseOptions(cfg.Tokenizer.Mode, cfg.Index.Lookup, cfg.Sort.Strategy, cfg.Index.FoldCacheSize); err != nil {
		return nil, fmt.Errorf("invalid analysis settings: %w", err)
	}

	s := &Server{
		config:  cfg,
		metrics: m,
		logger:  slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil,
	)
	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return ServerName, version.Version
}

// ListTools returns the registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{rankWordsInfo}
}

// CallTool invokes a tool by name with JSON-style arguments.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case RankWordsTool:
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, NewInvalidParamsError("arguments are not valid JSON")
		}
		var input RankWordsInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, NewInvalidParamsError(fmt.Sprintf("invalid arguments: %v", err))
		}
		_, out, err := s.rankWordsHandler(ctx, nil, input)
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        rankWordsInfo.Name,
		Description: rankWordsInfo.Description,
	}, s.rankWordsHandler)
	s.logger.Debug("tool_registered", slog.String("name", rankWordsInfo.Name))
}

// rankWordsHandler is the MCP SDK handler for the rank_words tool.
func (s *Server) rankWordsHandler(ctx context.Context, _ *mcp.CallToolRequest, input RankWordsInput) (
	*mcp.CallToolResult,
	RankWordsOutput,
	error,
) {
	out, err := s.rankWords(ctx, input)
	if s.metrics != nil {
		s.metrics.ObserveToolCall(RankWordsTool, err)
	}
	if err != nil {
		s.logger.Warn("tool_failed",
			slog.String("tool", RankWordsTool),
			slog.String("error", err.Error()))
		return nil, RankWordsOutput{}, MapError(err)
	}

	s.logger.Info("tool_called",
		slog.String("tool", RankWordsTool),
		slog.Int64("tokens", out.Tokens),
		slog.Int("distinct", out.Distinct))
	return nil, out, nil
}

func (s *Server) rankWords(ctx context.Context, input RankWordsInput) (RankWordsOutput, error) {
	if input.Text == "" {
		return RankWordsOutput{}, NewInvalidParamsError("text parameter is required")
	}
	if input.Top < 0 {
		return RankWordsOutput{}, NewInvalidParamsError("top must be non-negative")
	}
	if limit := s.config.Input.MaxBytes; limit > 0 && int64(len(input.Text)) > limit {
		return RankWordsOutput{}, &MCPError{
			Code:    ErrCodeInputTooLarge,
			Message: fmt.Sprintf("text is %d bytes, the limit is %d", len(input.Text), limit),
		}
	}

	mode := s.config.Tokenizer.Mode
	if input.Tokenizer != "" {
		mode = input.Tokenizer
	}
	opts, err := analysis.ParseOptions(mode, s.config.Index.Lookup, s.config.Sort.Strategy, s.config.Index.FoldCacheSize)
	if err != nil {
		return RankWordsOutput{}, err
	}
	if s.metrics != nil {
		opts.Observer = s.metrics
	}

	res, err := analysis.AnalyzeText(ctx, "mcp", input.Text, opts)
	if err != nil {
		return RankWordsOutput{}, err
	}

	rep := report.Build(res.Entries, res.Tokens, res.Distinct, nil, report.Filter{Top: input.Top})
	return RankWordsOutput{
		Tokens:   rep.Tokens,
		Distinct: rep.Distinct,
		Words:    rep.Words,
	}, nil
}

// Serve runs the server on stdio until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp_server_starting", slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("mcp_server_stopped", slog.String("error", err.Error()))
		return err
	}

	s.logger.Info("mcp_server_stopped")
	return nil
}

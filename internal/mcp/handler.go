package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/chuanjin/elmlink/internal/elm"
	"github.com/chuanjin/elmlink/internal/logger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Runner executes one command at a time.
type Runner interface {
	Run(cmd elm.Command) (any, error)
}

// SerialRunner serializes access to a session, which must never see two
// commands in flight.
type SerialRunner struct {
	mu      sync.Mutex
	session *elm.Session
}

func NewSerialRunner(s *elm.Session) *SerialRunner {
	return &SerialRunner{session: s}
}

func (r *SerialRunner) Run(cmd elm.Command) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Run(cmd)
}

// Server exposes a command table over MCP.
type Server struct {
	table     *elm.Table
	runner    Runner
	log       *zap.Logger
	mcpServer *mcp.Server
}

// NewServer creates a new MCP server for the given table.
func NewServer(table *elm.Table, runner Runner, version string) *Server {
	s := &Server{
		table:  table,
		runner: runner,
		log:    logger.Named("mcp"),
	}

	impl := &mcp.Implementation{
		Name:    "elmlink",
		Version: version,
	}
	s.mcpServer = mcp.NewServer(impl, nil)

	s.registerResources()
	s.registerTools()

	return s
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("Starting MCP server", zap.Int("commands", s.table.Len()))
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "command://list",
		Name:        "Command List",
		Description: "Commands known to the adapter session with their request strings",
		MIMEType:    "application/json",
	}, s.handleCommandList)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "run_command",
		Description: "Send a command to the ELM327 adapter and return the decoded value",
	}, s.handleRunCommand)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_commands",
		Description: "List the commands that can be run",
	}, s.handleListCommands)
}

type CommandInfo struct {
	Label   string `json:"label" jsonschema:"Command label"`
	Request string `json:"request" jsonschema:"Request sent to the adapter, without the trailing carriage return"`
}

func (s *Server) commandInfos() []CommandInfo {
	cmds := s.table.Commands()
	infos := make([]CommandInfo, 0, len(cmds))
	for _, cmd := range cmds {
		wire := cmd.Wire()
		infos = append(infos, CommandInfo{
			Label:   cmd.Label(),
			Request: string(wire[:len(wire)-1]),
		})
	}
	return infos
}

func (s *Server) handleCommandList(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.commandInfos(), "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

type RunCommandInput struct {
	Label string `json:"label" jsonschema:"Label of the command to run, e.g. RPM"`
}

type RunCommandOutput struct {
	Label string `json:"label" jsonschema:"Label of the command that ran"`
	Value any    `json:"value" jsonschema:"Decoded value, null for commands without a payload"`
}

func (s *Server) handleRunCommand(ctx context.Context, req *mcp.CallToolRequest, input RunCommandInput) (*mcp.CallToolResult, RunCommandOutput, error) {
	cmd, ok := s.table.Lookup(input.Label)
	if !ok {
		return nil, RunCommandOutput{}, fmt.Errorf("unknown command %q", input.Label)
	}

	v, err := s.runner.Run(cmd)
	if err != nil {
		s.log.Warn("Command failed", zap.String("command", cmd.Label()), zap.Error(err))
		return nil, RunCommandOutput{}, fmt.Errorf("run %s: %w", cmd.Label(), err)
	}

	s.log.Info("MCP: Ran command", zap.String("command", cmd.Label()), zap.Any("value", v))

	return nil, RunCommandOutput{
		Label: cmd.Label(),
		Value: v,
	}, nil
}

type ListCommandsOutput struct {
	Commands []CommandInfo `json:"commands" jsonschema:"Available commands"`
}

func (s *Server) handleListCommands(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, ListCommandsOutput, error) {
	infos := s.commandInfos()
	s.log.Debug("MCP: Listed commands", zap.Int("count", len(infos)))

	return nil, ListCommandsOutput{
		Commands: infos,
	}, nil
}

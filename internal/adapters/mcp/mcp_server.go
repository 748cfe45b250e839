// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// Server exposes the session controller as MCP tools.
type Server struct {
	server  *server.MCPServer
	control ports.TimerControl
	stats   ports.StatsProvider
	stdin   io.Reader
	stdout  io.Writer

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new MCP server instance. stats may be nil, in which
// case get_stats reports lifetime totals only.
func NewServer(control ports.TimerControl, stats ports.StatsProvider) *Server {
	s := &Server{
		control: control,
		stats:   stats,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}

	s.server = server.NewMCPServer(
		"pomodoro-timer",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer_state",
			mcp.WithDescription("Get the current phase, remaining time, settings and lifetime stats"),
		),
		s.handleGetTimerState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"toggle_timer",
			mcp.WithDescription("Start the countdown if paused, pause it if running"),
		),
		s.handleToggleTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Stop the countdown and refill the current phase"),
		),
		s.handleResetTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"switch_phase",
			mcp.WithDescription("Switch between work and break, leaving the timer paused"),
		),
		s.handleSwitchPhase,
	)

	s.server.AddTool(
		mcp.NewTool(
			"set_work_duration",
			mcp.WithDescription("Set the work phase length in minutes"),
			mcp.WithNumber(
				"minutes",
				mcp.Required(),
				mcp.Description("Whole number of minutes from 1 to 1440"),
			),
		),
		s.handleSetDuration(domain.PhaseWork),
	)

	s.server.AddTool(
		mcp.NewTool(
			"set_break_duration",
			mcp.WithDescription("Set the break phase length in minutes"),
			mcp.WithNumber(
				"minutes",
				mcp.Required(),
				mcp.Description("Whole number of minutes from 1 to 1440"),
			),
		),
		s.handleSetDuration(domain.PhaseBreak),
	)

	s.server.AddTool(
		mcp.NewTool(
			"cycle_theme",
			mcp.WithDescription("Advance to the next colour theme, or select one by name"),
			mcp.WithString(
				"name",
				mcp.Description("Optional theme name; fuzzy matched against Default, Nature, Ocean, Sunset"),
			),
		),
		s.handleCycleTheme,
	)

	s.server.AddTool(
		mcp.NewTool(
			"toggle_appearance",
			mcp.WithDescription("Switch between dark and light appearance"),
		),
		s.handleToggleAppearance,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_stats",
			mcp.WithDescription("Get lifetime pomodoro stats and today's completions"),
		),
		s.handleGetStats,
	)
}

// Start serves MCP requests over stdio until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunningLocked() {
		s.mu.Unlock()
		return errors.New("mcp server already running")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	ctx = s.ctx
	s.mu.Unlock()

	stdio := server.NewStdioServer(s.server)
	if err := stdio.Listen(ctx, s.stdin, s.stdout); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server and releases its context.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunningLocked()
}

func (s *Server) isRunningLocked() bool {
	return s.ctx != nil && s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// handleToggleTimer handles the toggle_timer tool.
func (s *Server) handleToggleTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.control.Toggle()
	return stateResult(s.control.Snapshot())
}

// handleResetTimer handles the reset_timer tool.
func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.control.Reset()
	return stateResult(s.control.Snapshot())
}

// handleSwitchPhase handles the switch_phase tool.
func (s *Server) handleSwitchPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.control.SwitchPhase()
	return stateResult(s.control.Snapshot())
}

// handleToggleAppearance handles the toggle_appearance tool.
func (s *Server) handleToggleAppearance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.control.ToggleAppearance()
	return stateResult(s.control.Snapshot())
}

// handleGetTimerState handles the get_timer_state tool.
func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return stateResult(s.control.Snapshot())
}

// handleSetDuration handles set_work_duration and set_break_duration.
func (s *Server) handleSetDuration(phase domain.Phase) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var ok bool
		if d := request.GetFloat("minutes", 0); d != 0 {
			ok = d == math.Trunc(d) && d > 0 && d <= domain.MaxDurationMinutes && s.setDuration(phase, int(d))
		} else if raw := request.GetString("minutes", ""); raw != "" {
			ok = s.editDuration(phase, raw)
		}
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%s duration must be a whole number of minutes from 1 to 1440", phase)), nil
		}
		return stateResult(s.control.Snapshot())
	}
}

func (s *Server) setDuration(phase domain.Phase, minutes int) bool {
	if phase == domain.PhaseBreak {
		return s.control.SetBreakDuration(minutes)
	}
	return s.control.SetWorkDuration(minutes)
}

func (s *Server) editDuration(phase domain.Phase, text string) bool {
	if phase == domain.PhaseBreak {
		return s.control.EditBreakDuration(text)
	}
	return s.control.EditWorkDuration(text)
}

// handleCycleTheme handles the cycle_theme tool.
func (s *Server) handleCycleTheme(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if name := request.GetString("name", ""); name != "" {
		if err := s.control.SelectTheme(name); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		s.control.CycleTheme()
	}
	return stateResult(s.control.Snapshot())
}

// handleGetStats handles the get_stats tool.
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.control.Snapshot()
	result := map[string]interface{}{
		"pomodoros_completed":   snap.Stats.PomodorosCompleted,
		"total_focused_minutes": snap.Stats.TotalFocusedMinutes,
	}

	if s.stats != nil {
		today, err := s.stats.Today(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get today's stats: %w", err)
		}
		result["today"] = map[string]interface{}{
			"date":            today.Date.Format("2006-01-02"),
			"pomodoros":       today.Pomodoros,
			"focused_minutes": today.FocusedMinutes,
		}
	}

	return jsonResult(result)
}

func stateResult(snap domain.Snapshot) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"phase":             string(snap.Timer.Phase),
		"remaining":         snap.Clock(),
		"remaining_seconds": snap.Timer.RemainingSeconds,
		"running":           snap.Timer.Running,
		"progress":          snap.Progress(),
		"title":             snap.Title(),
		"settings": map[string]interface{}{
			"work_minutes":  snap.Config.WorkDurationMinutes,
			"break_minutes": snap.Config.BreakDurationMinutes,
			"theme":         snap.Theme().Name,
			"dark_mode":     snap.Config.DarkMode,
		},
		"stats": map[string]interface{}{
			"pomodoros_completed":   snap.Stats.PomodorosCompleted,
			"total_focused_minutes": snap.Stats.TotalFocusedMinutes,
		},
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

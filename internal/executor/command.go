package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ShellExecutor implements CommandExecutor using os/exec
type ShellExecutor struct {
	logger *zap.Logger
}

// NewShellExecutor creates a new instance of ShellExecutor
func NewShellExecutor(logger *zap.Logger) *ShellExecutor {
	return &ShellExecutor{
		logger: logger,
	}
}

// Execute runs a command and returns its output
func (e *ShellExecutor) Execute(ctx context.Context, command string, args ...string) (string, error) {
	return e.executeWithOptions(ctx, command, CommandOptions{}, args...)
}

// ExecuteWithInput runs a command with stdin content and returns its output
func (e *ShellExecutor) ExecuteWithInput(ctx context.Context, command string, input string, args ...string) (string, error) {
	return e.executeWithOptions(ctx, command, CommandOptions{Input: input}, args...)
}

// ExecuteWithEnv runs a command with extra environment variables and returns its output
func (e *ShellExecutor) ExecuteWithEnv(ctx context.Context, command string, env map[string]string, args ...string) (string, error) {
	return e.executeWithOptions(ctx, command, CommandOptions{Env: env}, args...)
}

// executeWithOptions is the internal implementation that runs commands with options
func (e *ShellExecutor) executeWithOptions(ctx context.Context, command string, options CommandOptions, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	if options.Dir != "" {
		cmd.Dir = options.Dir
	}

	if len(options.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range options.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	if options.Input != "" {
		cmd.Stdin = strings.NewReader(options.Input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if e.logger != nil {
		e.logger.Debug("Executing command",
			zap.String("command", command),
			zap.Strings("args", args),
			zap.String("dir", options.Dir),
		)
	}

	err := cmd.Run()

	stdoutStr := stdout.String()
	stderrStr := stderr.String()

	// Report cancellation as such rather than as a tool failure
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stderrStr, fmt.Errorf("command interrupted: %w", ctxErr)
	}

	if err != nil {
		if e.logger != nil {
			e.logger.Error("Command execution failed",
				zap.String("command", command),
				zap.Strings("args", args),
				zap.String("stdout", stdoutStr),
				zap.String("stderr", stderrStr),
				zap.Error(err),
			)
		}
		return stderrStr, fmt.Errorf("command execution failed: %w: %s", err, stderrStr)
	}

	return stdoutStr, nil
}

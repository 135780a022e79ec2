package executor

import "context"

// CommandExecutor defines the interface for running external system tools.
// Every shell-out in the provisioning workflow goes through this seam so
// that tests can substitute a mock.
type CommandExecutor interface {
	// Execute runs a command and returns its stdout
	Execute(ctx context.Context, command string, args ...string) (string, error)

	// ExecuteWithInput runs a command with stdin content and returns its stdout
	ExecuteWithInput(ctx context.Context, command string, input string, args ...string) (string, error)

	// ExecuteWithEnv runs a command with extra environment variables and returns its stdout
	ExecuteWithEnv(ctx context.Context, command string, env map[string]string, args ...string) (string, error)
}

// CommandOptions contains options for command execution
type CommandOptions struct {
	// Directory to run the command in
	Dir string

	// Environment variables set on top of the inherited environment
	Env map[string]string

	// Input to provide on stdin
	Input string
}

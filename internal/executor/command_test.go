package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockCommandExecutor_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       string
		args          []string
		setupMock     func(*MockCommandExecutor)
		expectedOut   string
		expectedError bool
	}{
		{
			name:    "successful command execution",
			command: "mountpoint",
			args:    []string{"-q", "/mnt/paperless_data"},
			setupMock: func(m *MockCommandExecutor) {
				m.AddCommandResult("mountpoint -q /mnt/paperless_data", "", nil)
			},
			expectedOut:   "",
			expectedError: false,
		},
		{
			name:    "command execution with error",
			command: "mount",
			args:    []string{"-a"},
			setupMock: func(m *MockCommandExecutor) {
				m.AddCommandResult(
					"mount -a",
					"",
					errors.New("mount: /mnt/paperless_data: connection reset by peer"),
				)
			},
			expectedOut:   "",
			expectedError: true,
		},
		{
			name:    "unexpected command",
			command: "umount",
			args:    []string{"/mnt/paperless_data"},
			setupMock: func(m *MockCommandExecutor) {
				// Not setting up this command, should return an error
			},
			expectedOut:   "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockExecutor := NewMockCommandExecutor()
			tt.setupMock(mockExecutor)

			out, err := mockExecutor.Execute(context.Background(), tt.command, tt.args...)

			if tt.expectedError {
				if err == nil {
					t.Errorf("expected error but got nil")
				}
			} else {
				if err != nil {
					t.Errorf("expected no error but got: %v", err)
				}
			}

			if out != tt.expectedOut {
				t.Errorf("expected output %q but got %q", tt.expectedOut, out)
			}

			// Verify the command was recorded
			cmdString := tt.command + " " + strings.Join(tt.args, " ")
			found := false
			for _, cmd := range mockExecutor.ExecutedCommands {
				if cmd == cmdString {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("command %q was not executed", cmdString)
			}
		})
	}
}

func TestMockCommandExecutor_CancelledContext(t *testing.T) {
	mockExecutor := NewMockCommandExecutor()
	mockExecutor.AddCommandResult("mount -a", "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mockExecutor.Execute(ctx, "mount", "-a")
	if err == nil {
		t.Fatal("expected error from cancelled context but got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got: %v", err)
	}
}

func TestShellExecutor_Execute(t *testing.T) {
	exec := NewShellExecutor(nil)

	out, err := exec.Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("expected output %q but got %q", "hello", out)
	}
}

func TestShellExecutor_ExecuteWithInput(t *testing.T) {
	exec := NewShellExecutor(nil)

	out, err := exec.ExecuteWithInput(context.Background(), "cat", "stdin content")
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if out != "stdin content" {
		t.Errorf("expected output %q but got %q", "stdin content", out)
	}
}

func TestShellExecutor_ExecuteFailure(t *testing.T) {
	exec := NewShellExecutor(nil)

	_, err := exec.Execute(context.Background(), "false")
	if err == nil {
		t.Fatal("expected error from failing command but got nil")
	}
}

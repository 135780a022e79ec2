package pkgmgr

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/executor"
)

func TestManager_EnsureInstalled(t *testing.T) {
	tests := []struct {
		name          string
		binaryOnPath  bool
		setupMock     func(*executor.MockCommandExecutor)
		expectError   bool
		expectedCmds  []string
		forbiddenCmds []string
	}{
		{
			name:         "binary already on path skips apt entirely",
			binaryOnPath: true,
			setupMock:    func(m *executor.MockCommandExecutor) {},
			forbiddenCmds: []string{
				"apt-get update",
				"apt-get install -y sshfs",
			},
		},
		{
			name:         "missing binary triggers update then install",
			binaryOnPath: false,
			setupMock: func(m *executor.MockCommandExecutor) {
				m.AddCommandResult("apt-get update", "", nil)
				m.AddCommandResult("apt-get install -y sshfs", "", nil)
			},
			expectedCmds: []string{
				"apt-get update",
				"apt-get install -y sshfs",
			},
		},
		{
			name:         "index refresh failure is fatal",
			binaryOnPath: false,
			setupMock: func(m *executor.MockCommandExecutor) {
				m.AddCommandResult("apt-get update", "", errors.New("could not resolve archive.debian.org"))
			},
			expectError: true,
			forbiddenCmds: []string{
				"apt-get install -y sshfs",
			},
		},
		{
			name:         "install failure is fatal",
			binaryOnPath: false,
			setupMock: func(m *executor.MockCommandExecutor) {
				m.AddCommandResult("apt-get update", "", nil)
				m.AddCommandResult("apt-get install -y sshfs", "", errors.New("unable to locate package"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := executor.NewMockCommandExecutor()
			tt.setupMock(mock)

			mgr := NewManager(mock, zap.NewNop())
			mgr.lookPath = func(file string) (string, error) {
				if tt.binaryOnPath {
					return "/usr/bin/" + file, nil
				}
				return "", errors.New("executable file not found in $PATH")
			}

			err := mgr.EnsureInstalled(context.Background(), "sshfs", "sshfs")

			if tt.expectError && err == nil {
				t.Fatal("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("expected no error but got: %v", err)
			}

			for _, want := range tt.expectedCmds {
				if !contains(mock.ExecutedCommands, want) {
					t.Errorf("expected command %q to have run, got %v", want, mock.ExecutedCommands)
				}
			}
			for _, forbidden := range tt.forbiddenCmds {
				if contains(mock.ExecutedCommands, forbidden) {
					t.Errorf("command %q must not have run, got %v", forbidden, mock.ExecutedCommands)
				}
			}
		})
	}
}

func contains(cmds []string, want string) bool {
	for _, c := range cmds {
		if c == want {
			return true
		}
	}
	return false
}

// Package editor keeps the editor's colorscheme directive in step with the terminal theme.
package editor

import (
	"bytes"
	"context"
	"os/exec"
)

// Executor runs an external program and returns its captured output.
type Executor interface {
	Exec(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// LocalExecutor runs programs on the local machine.
type LocalExecutor struct{}

// Exec runs name with args and waits for it to exit.
func (LocalExecutor) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

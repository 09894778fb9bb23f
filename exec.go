package chmgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	chmerrors "github.com/tamirms/chmgen/errors"
)

// RunCode compiles and runs emitted Go code in a scratch directory and
// reports whether its self test passed. The builtin templates exit non-zero
// on any mismatch, so a nil return means every key mapped to its own
// position inside a separately compiled program, not merely inside this
// process. Requires the go tool on PATH.
func RunCode(ctx context.Context, code string) error {
	dir, err := os.MkdirTemp("", "chmgen-run-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write scratch program: %w", err)
	}

	cmd := exec.CommandContext(ctx, "go", "run", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return fmt.Errorf("%w: %v\n%s", chmerrors.ErrExecFailed, err, msg)
		}
		return fmt.Errorf("%w: %v", chmerrors.ErrExecFailed, err)
	}
	return nil
}

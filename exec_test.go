package chmgen

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	chmerrors "github.com/tamirms/chmgen/errors"
)

func requireGoTool(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping go run test in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not on PATH")
	}
}

func TestRunCodeTrivial(t *testing.T) {
	requireGoTool(t)
	if err := RunCode(context.Background(), "package main\n\nfunc main() {}\n"); err != nil {
		t.Fatalf("RunCode: %v", err)
	}
}

func TestRunCodeExitFailure(t *testing.T) {
	requireGoTool(t)
	code := "package main\n\nimport \"os\"\n\nfunc main() { os.Exit(1) }\n"
	err := RunCode(context.Background(), code)
	if !errors.Is(err, chmerrors.ErrExecFailed) {
		t.Fatalf("RunCode error = %v, want ErrExecFailed", err)
	}
}

func TestRunCodeCompileError(t *testing.T) {
	requireGoTool(t)
	err := RunCode(context.Background(), "package main\n\nfunc main() { broken( }\n")
	if !errors.Is(err, chmerrors.ErrExecFailed) {
		t.Fatalf("RunCode error = %v, want ErrExecFailed", err)
	}
	// The compiler diagnostic rides along for the caller to print.
	if !strings.Contains(err.Error(), "main.go") {
		t.Errorf("error %q does not carry the compiler output", err)
	}
}

func TestRunCodeCanceledContext(t *testing.T) {
	requireGoTool(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunCode(ctx, "package main\n\nfunc main() {}\n")
	if !errors.Is(err, chmerrors.ErrExecFailed) {
		t.Fatalf("RunCode error = %v, want ErrExecFailed", err)
	}
}

// TestRunCodeSelfTest compiles and runs the emitted program for each hash
// kind and checks that its built-in verification passes outside this
// process.
func TestRunCodeSelfTest(t *testing.T) {
	requireGoTool(t)
	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"strsalt", nil},
		{"intsalt", []Option{WithHashKind(HashIntSalt)}},
		{"pow2", []Option{WithPow2()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rng := newTestRNG(t)
			keys := genKeys(rng, 30)
			opts := append([]Option{WithSeed(rng.Uint64())}, tc.opts...)

			code, err := GenerateCode(keys, "", Format{}, opts...)
			if err != nil {
				t.Fatalf("GenerateCode: %v", err)
			}
			if err := RunCode(context.Background(), code); err != nil {
				t.Fatalf("emitted program failed its self test: %v", err)
			}
		})
	}
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunScriptEvaluatesInlineExpression(t *testing.T) {
	oldEval := runEval
	defer func() { runEval = oldEval }()
	runEval = "(+ 1 2 3)"

	out, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, out)
	}
	if strings.TrimSpace(out) != "6" {
		t.Fatalf("got output %q", out)
	}
}

func TestRunScriptFromFile(t *testing.T) {
	oldEval := runEval
	defer func() { runEval = oldEval }()
	runEval = ""

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.eka")
	if err := os.WriteFile(path, []byte("(defn addOne [n] (+ n 1)) (addOne 41)"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out, err := captureStdout(t, func() error { return runScript(runCmd, []string{path}) })
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, out)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("got output %q", out)
	}
}

func TestRunScriptReportsRuntimeError(t *testing.T) {
	oldEval := runEval
	defer func() { runEval = oldEval }()
	runEval = "(undefinedThing)"

	_, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err == nil || !strings.Contains(err.Error(), "undefinedThing") {
		t.Fatalf("expected error mentioning undefinedThing, got %v", err)
	}
}

func TestRunScriptRequiresFileOrEval(t *testing.T) {
	oldEval := runEval
	defer func() { runEval = oldEval }()
	runEval = ""

	_, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err == nil {
		t.Fatal("expected error when neither a file nor -e is given")
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunLexDumpsTokenStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.suru")
	src := "main : () {\n    print(\"Hello\")\n}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runLex(nil, []string{path}); err != nil {
			t.Fatalf("runLex: %v", err)
		}
	})

	if !bytes.Contains([]byte(out), []byte("Token: TOKEN_IDENTIFIER Text: main")) {
		t.Fatalf("output missing identifier token, got: %q", out)
	}
	if bytes.Contains([]byte(out), []byte("TOKEN_EOF")) {
		t.Fatalf("output should stop before EOF, got: %q", out)
	}
}

func TestRunParseDumpsTreeShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.suru")
	src := "main : () {\n    print(\"Hello\")\n}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runParse(nil, []string{path}); err != nil {
			t.Fatalf("runParse: %v", err)
		}
	})

	if !bytes.Contains([]byte(out), []byte("FUNCTION_DECL")) {
		t.Fatalf("output missing FUNCTION_DECL, got: %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("IDENTIFIER: main")) {
		t.Fatalf("output missing identifier text, got: %q", out)
	}
}

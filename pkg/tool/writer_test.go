package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFileWriterWritesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	content := "# Project\n\nHello.\n"

	result := NewFileWriter().Invoke(context.Background(), map[string]any{
		"path":    path,
		"content": content,
	})
	if result.IsError {
		t.Fatalf("unexpected failure: %s", result.Content)
	}
	if !strings.Contains(result.Content, fmt.Sprintf("%d characters", len(content))) {
		t.Fatalf("status missing character count: %q", result.Content)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != content {
		t.Fatalf("content mismatch: %q", string(data))
	}
}

func TestFileWriterCountsCharactersNotBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	content := "Héllo, wörld — ünïcode\n"

	result := NewFileWriter().Invoke(context.Background(), map[string]any{
		"path":    path,
		"content": content,
	})
	if result.IsError {
		t.Fatalf("unexpected failure: %s", result.Content)
	}
	if !strings.Contains(result.Content, fmt.Sprintf("%d characters", utf8.RuneCountInString(content))) {
		t.Fatalf("status should count characters, not bytes: %q", result.Content)
	}
	if strings.Contains(result.Content, fmt.Sprintf("%d characters", len(content))) {
		t.Fatalf("status counted bytes: %q", result.Content)
	}
}

func TestFileWriterCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs", "nested", "out.txt")

	result := NewFileWriter().Invoke(context.Background(), map[string]any{
		"path":    path,
		"content": "x",
	})
	if result.IsError {
		t.Fatalf("unexpected failure: %s", result.Content)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
}

func TestFileWriterUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file, not a dir"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// Parent of the target path is a regular file, so the write must fail.
	result := NewFileWriter().Invoke(context.Background(), map[string]any{
		"path":    filepath.Join(blocker, "out.txt"),
		"content": "x",
	})
	if !result.IsError {
		t.Fatalf("expected failure result, got %q", result.Content)
	}
	if !strings.Contains(result.Content, "Error writing file") {
		t.Fatalf("unexpected failure message: %q", result.Content)
	}
}

func TestFileWriterMissingArgs(t *testing.T) {
	result := NewFileWriter().Invoke(context.Background(), map[string]any{"content": "x"})
	if !result.IsError {
		t.Fatalf("expected failure for missing path")
	}

	result = NewFileWriter().Invoke(context.Background(), map[string]any{"path": "out.txt"})
	if !result.IsError {
		t.Fatalf("expected failure for missing content")
	}
}

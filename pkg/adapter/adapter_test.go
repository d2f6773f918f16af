package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madslabs/mads/pkg/tool"
)

func TestSystemPrompt(t *testing.T) {
	req := Request{
		Role:      "a Senior Project Navigator",
		Objective: "Map the project.",
		Persona:   "You explore codebases.",
	}

	prompt := systemPrompt(req)
	if !strings.HasPrefix(prompt, "You are a Senior Project Navigator.") {
		t.Fatalf("unexpected prefix: %q", prompt)
	}
	if !strings.Contains(prompt, "You explore codebases.") {
		t.Fatalf("persona missing: %q", prompt)
	}
	if !strings.Contains(prompt, "Your objective: Map the project.") {
		t.Fatalf("objective missing: %q", prompt)
	}

	if got := systemPrompt(Request{}); got != "" {
		t.Fatalf("empty identity must yield empty prompt, got %q", got)
	}
}

func TestInvokeToolDispatch(t *testing.T) {
	tools, err := tool.ForKinds(tool.KindFileWriter)
	if err != nil {
		t.Fatalf("for kinds: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	args, _ := json.Marshal(map[string]string{"path": path, "content": "hello"})

	result, call := invokeTool(context.Background(), tools, "write_file", args)
	if result.IsError {
		t.Fatalf("unexpected failure: %s", result.Content)
	}
	if call.Tool != "write_file" || call.IsError {
		t.Fatalf("unexpected call record: %+v", call)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("tool did not write file: %v", err)
	}
}

func TestInvokeToolUnknown(t *testing.T) {
	result, call := invokeTool(context.Background(), nil, "nope", nil)
	if !result.IsError || !strings.Contains(result.Content, "Unknown tool") {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !call.IsError {
		t.Fatalf("call record must flag the error")
	}
}

func TestInvokeToolBadArgs(t *testing.T) {
	tools, _ := tool.ForKinds(tool.KindCodeScanner)

	result, _ := invokeTool(context.Background(), tools, "scan_code", json.RawMessage("not json"))
	if !result.IsError || !strings.Contains(result.Content, "Invalid tool arguments") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMockAdapterScriptedResponses(t *testing.T) {
	mock := NewMockAdapterWithResponses(map[string]string{"navigator": "the map"}, "")

	resp, err := mock.Execute(context.Background(), Request{Worker: "navigator", Prompt: "go"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Artifact.Content != "the map" {
		t.Fatalf("unexpected content %q", resp.Artifact.Content)
	}

	resp, err = mock.Execute(context.Background(), Request{Worker: "other", Prompt: "go"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(resp.Artifact.Content, "mock response:") {
		t.Fatalf("default response missing: %q", resp.Artifact.Content)
	}
	if len(mock.Requests) != 2 {
		t.Fatalf("expected 2 recorded requests, got %d", len(mock.Requests))
	}
}

func TestMockAdapterFailWorker(t *testing.T) {
	mock := NewMockAdapter()
	mock.FailWorker("bad", fmt.Errorf("boom"))

	if _, err := mock.Execute(context.Background(), Request{Worker: "bad"}); err == nil {
		t.Fatalf("expected scripted failure")
	}
}

func TestAdapterError(t *testing.T) {
	inner := fmt.Errorf("status 429")
	err := &Error{Provider: "openai", Err: inner}
	if !strings.Contains(err.Error(), "openai adapter") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err.Unwrap() != inner {
		t.Fatalf("unwrap mismatch")
	}
}

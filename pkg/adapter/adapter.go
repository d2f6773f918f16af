package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/madslabs/mads/pkg/artifact"
	"github.com/madslabs/mads/pkg/tool"
)

// defaultMaxIterations caps the tool-use reasoning loop when a request does
// not set its own limit.
const defaultMaxIterations = 5

// Request is the unit of work handed to a provider: the worker identity,
// its capability set, the resolved model configuration, and the assembled
// prompt context for one stage.
type Request struct {
	Worker        string
	Role          string
	Objective     string
	Persona       string
	Prompt        string
	Model         string
	Temperature   float64
	MaxIterations int
	Tools         []tool.Tool
}

// ToolCall records one tool invocation made during a request.
type ToolCall struct {
	Tool    string          `json:"tool"`
	Args    json.RawMessage `json:"args,omitempty"`
	Result  string          `json:"result,omitempty"`
	IsError bool            `json:"is_error,omitempty"`
}

// Response wraps the final text produced for a request.
type Response struct {
	Artifact  *artifact.Artifact
	ToolCalls []ToolCall
}

// Adapter defines the interface for LLM provider adapters. The provider owns
// the reasoning loop: it may invoke the request's tools any number of times
// up to MaxIterations before producing the final text.
type Adapter interface {
	// Execute runs the request to completion and returns the final text.
	// A nil error means the response carries a non-nil Artifact.
	Execute(ctx context.Context, req Request) (*Response, error)

	// Name returns the adapter's identifier.
	Name() string

	// Models returns the list of supported models.
	Models() []string
}

func (r Request) maxIterations() int {
	if r.MaxIterations > 0 {
		return r.MaxIterations
	}
	return defaultMaxIterations
}

// systemPrompt assembles the worker identity into a system instruction.
func systemPrompt(req Request) string {
	var sb strings.Builder
	if req.Role != "" {
		fmt.Fprintf(&sb, "You are %s.", req.Role)
	}
	if req.Persona != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(req.Persona)
	}
	if req.Objective != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Your objective: %s", req.Objective)
	}
	return sb.String()
}

// invokeTool dispatches a provider tool call to the matching tool in the
// request's capability set. Unknown tools and bad arguments come back as
// error results for the model to read, never as Go errors.
func invokeTool(ctx context.Context, tools []tool.Tool, name string, rawArgs json.RawMessage) (tool.Result, ToolCall) {
	call := ToolCall{Tool: name, Args: rawArgs}

	var target tool.Tool
	for _, t := range tools {
		if t.Info().Name == name {
			target = t
			break
		}
	}
	if target == nil {
		result := tool.Result{Content: fmt.Sprintf("Unknown tool: %s", name), IsError: true}
		call.Result, call.IsError = result.Content, true
		return result, call
	}

	args := map[string]any{}
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			result := tool.Result{Content: fmt.Sprintf("Invalid tool arguments: %v", err), IsError: true}
			call.Result, call.IsError = result.Content, true
			return result, call
		}
	}

	result := target.Invoke(ctx, args)
	call.Result, call.IsError = result.Content, result.IsError
	return result, call
}

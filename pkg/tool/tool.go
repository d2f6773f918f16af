package tool

import (
	"context"
	"fmt"
)

// Kind identifies one of the built-in tools. The set is closed: adding a
// tool means adding a Kind constant and a constructor case in ForKinds.
type Kind string

const (
	KindFileWriter  Kind = "file_writer"
	KindCodeScanner Kind = "code_scanner"
)

// Parameter describes one tool argument for provider schema translation.
type Parameter struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Info holds tool metadata exposed to the model.
type Info struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Result is the outcome of a tool invocation. Tool failures are carried as
// descriptive content with IsError set, never as Go errors: the consumer is
// a model reasoning loop that can only act on text.
type Result struct {
	Content string
	IsError bool
}

// Tool is a deterministic utility a worker may invoke during reasoning.
type Tool interface {
	Kind() Kind
	Info() Info
	Invoke(ctx context.Context, args map[string]any) Result
}

// ForKinds builds the tool set for a worker capability list.
func ForKinds(kinds ...Kind) ([]Tool, error) {
	tools := make([]Tool, 0, len(kinds))
	for _, kind := range kinds {
		switch kind {
		case KindFileWriter:
			tools = append(tools, NewFileWriter())
		case KindCodeScanner:
			tools = append(tools, NewCodeScanner())
		default:
			return nil, fmt.Errorf("unknown tool kind %q", kind)
		}
	}
	return tools, nil
}

func failure(format string, args ...any) Result {
	return Result{Content: fmt.Sprintf(format, args...), IsError: true}
}

func stringArg(args map[string]any, name string) (string, bool) {
	value, ok := args[name].(string)
	return value, ok
}

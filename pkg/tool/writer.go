package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// FileWriter writes text content to a file, creating parent directories as
// needed. All I/O failures surface as failure results.
type FileWriter struct{}

// NewFileWriter creates the file writer tool.
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// Kind returns the tool kind.
func (t *FileWriter) Kind() Kind {
	return KindFileWriter
}

// Info returns the tool schema exposed to the model.
func (t *FileWriter) Info() Info {
	return Info{
		Name:        "write_file",
		Description: "Writes given text content to a specified file, overwriting any existing content. Parent directories are created if missing.",
		Parameters: []Parameter{
			{Name: "path", Type: "string", Description: "Path of the file to write", Required: true},
			{Name: "content", Type: "string", Description: "Text content to write to the file", Required: true},
		},
	}
}

// Invoke writes args["content"] to args["path"].
func (t *FileWriter) Invoke(_ context.Context, args map[string]any) Result {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return failure("write_file: path parameter is required")
	}
	content, ok := stringArg(args, "content")
	if !ok {
		return failure("write_file: content parameter is required")
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return failure("Error writing file '%s': %v", path, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return failure("Error writing file '%s': %v", path, err)
	}

	// Character count, not byte count, so non-ASCII content reports sensibly.
	return Result{Content: fmt.Sprintf("File '%s' successfully written with %d characters.", path, utf8.RuneCountInString(content))}
}

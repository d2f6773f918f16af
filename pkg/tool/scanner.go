package tool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// importPrefixes marks lines collected as import-like statements. Matching is
// deliberately shallow and language-agnostic: this is a heuristic scan, not a
// parser, and false positives are acceptable.
var importPrefixes = []string{"import ", "from ", "require", "include"}

// Report is the structured result of a code scan.
type Report struct {
	File         string   `json:"file"`
	Lines        int      `json:"lines"`
	HasClasses   bool     `json:"has_classes"`
	HasFunctions bool     `json:"has_functions"`
	Imports      []string `json:"imports"`
	FileType     string   `json:"file_type"`
}

// CodeScanner performs a shallow static scan of a single source file.
type CodeScanner struct{}

// NewCodeScanner creates the code scanner tool.
func NewCodeScanner() *CodeScanner {
	return &CodeScanner{}
}

// Kind returns the tool kind.
func (t *CodeScanner) Kind() Kind {
	return KindCodeScanner
}

// Info returns the tool schema exposed to the model.
func (t *CodeScanner) Info() Info {
	return Info{
		Name:        "scan_code",
		Description: "Analyzes a code file to extract line count, class and function markers, and import statements.",
		Parameters: []Parameter{
			{Name: "path", Type: "string", Description: "Path of the code file to analyze", Required: true},
		},
	}
}

// Invoke scans args["path"] and returns the report as indented JSON.
func (t *CodeScanner) Invoke(_ context.Context, args map[string]any) Result {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return failure("scan_code: path parameter is required")
	}

	report, err := Scan(path)
	if err != nil {
		return failure("Error analyzing %s: %v", path, err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return failure("Error analyzing %s: %v", path, err)
	}
	return Result{Content: string(data)}
}

// Scan reads the file at path and computes its report.
func Scan(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content := string(data)
	lines := strings.Split(content, "\n")

	var imports []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		for _, prefix := range importPrefixes {
			if strings.HasPrefix(stripped, prefix) {
				imports = append(imports, stripped)
				break
			}
		}
	}

	return &Report{
		File:         path,
		Lines:        len(lines),
		HasClasses:   strings.Contains(content, "class "),
		HasFunctions: strings.Contains(content, "def ") || strings.Contains(content, "function "),
		Imports:      imports,
		FileType:     filepath.Ext(path),
	}, nil
}

package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/madslabs/mads/pkg/adapter"
)

// promptLimit caps how much prompt/output text lands in stage records.
// Longer values are truncated and carried as a hash instead.
const promptLimit = 4096

// RunRecord captures run-level metadata.
type RunRecord struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Crew       string            `json:"crew"`
	ProjectDir string            `json:"project_dir"`
	Params     map[string]string `json:"params,omitempty"`
}

// StageRecord captures the trace of a single stage.
type StageRecord struct {
	Name           string             `json:"name"`
	Worker         string             `json:"worker"`
	Adapter        string             `json:"adapter"`
	Model          string             `json:"model"`
	Prompt         string             `json:"prompt,omitempty"`
	PromptHash     string             `json:"prompt_hash,omitempty"`
	Output         string             `json:"output,omitempty"`
	OutputHash     string             `json:"output_hash,omitempty"`
	ToolCalls      []adapter.ToolCall `json:"tool_calls,omitempty"`
	DurationMillis int64              `json:"duration_ms"`
}

// SetPrompt stores the prompt, truncating and hashing oversized text.
func (r *StageRecord) SetPrompt(prompt string) {
	r.Prompt = truncate(prompt, promptLimit)
	if r.Prompt != prompt {
		r.PromptHash = hashString(prompt)
	}
}

// SetOutput stores the output, truncating and hashing oversized text.
func (r *StageRecord) SetOutput(output string) {
	r.Output = truncate(output, promptLimit)
	if r.Output != output {
		r.OutputHash = hashString(output)
	}
}

// Writer writes run traces to disk.
type Writer struct {
	baseDir string
	runDir  string
}

// NewWriter creates a trace writer rooted at baseDir/runID.
func NewWriter(baseDir, runID string) (*Writer, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if runID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(filepath.Join(runDir, "stages"), 0755); err != nil {
		return nil, err
	}

	return &Writer{baseDir: baseDir, runDir: runDir}, nil
}

// RunDir returns the run directory path.
func (w *Writer) RunDir() string {
	return w.runDir
}

// WriteRun writes run metadata to run.json.
func (w *Writer) WriteRun(record RunRecord) error {
	return writeJSON(filepath.Join(w.runDir, "run.json"), record)
}

// WriteStage writes a stage record to stages/<stage>.json.
func (w *Writer) WriteStage(record StageRecord) error {
	path := filepath.Join(w.runDir, "stages", fmt.Sprintf("%s.json", record.Name))
	return writeJSON(path, record)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func truncate(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit]
}

func hashString(value string) string {
	h := sha256.Sum256([]byte(value))
	return hex.EncodeToString(h[:])
}

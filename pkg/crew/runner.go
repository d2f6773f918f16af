package crew

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/madslabs/mads/pkg/adapter"
	"github.com/madslabs/mads/pkg/artifact"
	"github.com/madslabs/mads/pkg/tool"
	"github.com/madslabs/mads/pkg/trace"
)

// RunOptions configures a crew run.
type RunOptions struct {
	// Params are substituted into stage instruction templates.
	Params map[string]string

	// Adapters maps adapter names to implementations. Each worker's model
	// config selects one by name.
	Adapters map[string]adapter.Adapter

	// TraceDir, when set, receives a run trace under TraceDir/<runID>.
	// Trace write failures are logged, never fatal.
	TraceDir string

	Logger func(format string, args ...any)
}

// StageResult captures the outcome of one stage.
type StageResult struct {
	Name      string
	Status    Status
	Artifact  *artifact.Artifact
	ToolCalls []adapter.ToolCall
	Duration  time.Duration
}

// RunResult captures a full crew run. Final is the last stage's output,
// which is the pipeline's overall result.
type RunResult struct {
	RunID    string
	TraceDir string
	Stages   map[string]*StageResult
	Final    string
}

// Run executes the crew's stages strictly in list order, threading each
// stage's output into the context of later stages that declare it as a
// dependency. The first stage failure aborts the run; remaining stages do
// not execute.
func Run(ctx context.Context, c *Crew, opts RunOptions) (*RunResult, error) {
	if c == nil {
		return nil, fmt.Errorf("crew is required")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Adapters) == 0 {
		return nil, fmt.Errorf("no adapters configured")
	}

	logf := opts.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	runID := uuid.NewString()
	var writer *trace.Writer
	if opts.TraceDir != "" {
		w, err := trace.NewWriter(opts.TraceDir, runID)
		if err != nil {
			logf("trace disabled: %v", err)
		} else {
			writer = w
			record := trace.RunRecord{
				ID:         runID,
				Timestamp:  time.Now().UTC(),
				Crew:       c.Name,
				ProjectDir: opts.Params["project_directory"],
				Params:     opts.Params,
			}
			if err := writer.WriteRun(record); err != nil {
				logf("trace run record: %v", err)
			}
		}
	}

	result := &RunResult{
		RunID:  runID,
		Stages: make(map[string]*StageResult, len(c.Stages)),
	}
	if writer != nil {
		result.TraceDir = writer.RunDir()
	}

	// Stages an aborted run never reached stay pending.
	for _, stage := range c.Stages {
		result.Stages[stage.Name] = &StageResult{Name: stage.Name, Status: StatusPending}
	}

	outputs := make([]string, len(c.Stages))

	for i, stage := range c.Stages {
		logf("stage %d/%d: %s (%s)", i+1, len(c.Stages), stage.Name, stage.Worker.Role)

		stageResult, err := runStage(ctx, c, stage, i, outputs, opts, writer, logf)
		result.Stages[stage.Name] = stageResult
		if err != nil {
			// Partial results are still returned so callers can see which
			// stages completed, failed, or never ran.
			return result, fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		outputs[i] = stageResult.Artifact.Content
	}

	result.Final = outputs[len(outputs)-1]
	return result, nil
}

func runStage(
	ctx context.Context,
	c *Crew,
	stage *Stage,
	index int,
	outputs []string,
	opts RunOptions,
	writer *trace.Writer,
	logf func(format string, args ...any),
) (*StageResult, error) {
	start := time.Now()
	stageResult := &StageResult{Name: stage.Name, Status: StatusRunning}

	fail := func(err error) (*StageResult, error) {
		stageResult.Status = StatusFailed
		stageResult.Duration = time.Since(start)
		return stageResult, err
	}

	worker := stage.Worker
	adapterImpl, ok := opts.Adapters[worker.Model.Adapter]
	if !ok {
		return fail(fmt.Errorf("adapter %s not found", worker.Model.Adapter))
	}

	model := worker.Model.Model
	if model == "" {
		models := adapterImpl.Models()
		if len(models) > 0 {
			model = models[0]
		}
	}
	if model == "" {
		return fail(fmt.Errorf("model not specified"))
	}

	prompt, err := assembleContext(c, stage, outputs, opts.Params)
	if err != nil {
		return fail(err)
	}

	tools, err := tool.ForKinds(worker.Tools...)
	if err != nil {
		return fail(err)
	}

	resp, err := adapterImpl.Execute(ctx, adapter.Request{
		Worker:        worker.Name,
		Role:          worker.Role,
		Objective:     worker.Objective,
		Persona:       worker.Persona,
		Prompt:        prompt,
		Model:         model,
		Temperature:   worker.Model.Temperature,
		MaxIterations: worker.Model.MaxIterations,
		Tools:         tools,
	})
	if err != nil {
		return fail(err)
	}
	if resp == nil || resp.Artifact == nil {
		return fail(fmt.Errorf("adapter %s returned no artifact", adapterImpl.Name()))
	}

	stageResult.Status = StatusCompleted
	stageResult.Artifact = resp.Artifact
	stageResult.ToolCalls = resp.ToolCalls
	stageResult.Duration = time.Since(start)

	if writer != nil {
		record := trace.StageRecord{
			Name:           stage.Name,
			Worker:         worker.Name,
			Adapter:        adapterImpl.Name(),
			Model:          model,
			ToolCalls:      resp.ToolCalls,
			DurationMillis: stageResult.Duration.Milliseconds(),
		}
		record.SetPrompt(prompt)
		record.SetOutput(resp.Artifact.Content)
		if err := writer.WriteStage(record); err != nil {
			logf("trace stage record: %v", err)
		}
	}

	return stageResult, nil
}

// assembleContext builds the full prompt for a stage: rendered instructions,
// expected-output guidance, then each declared dependency's output in
// DependsOn order. Outputs of undeclared stages never enter the context.
func assembleContext(c *Crew, stage *Stage, outputs []string, params map[string]string) (string, error) {
	instructions, err := renderInstructions(stage.Instructions, params)
	if err != nil {
		return "", fmt.Errorf("render instructions: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)

	if stage.ExpectedOutput != "" {
		sb.WriteString("\n\nExpected output:\n")
		sb.WriteString(stage.ExpectedOutput)
	}

	for _, dep := range stage.DependsOn {
		sb.WriteString(fmt.Sprintf("\n\nContext from %s:\n", c.Stages[dep].Name))
		sb.WriteString(outputs[dep])
	}

	return sb.String(), nil
}

func renderInstructions(instructions string, params map[string]string) (string, error) {
	tmpl, err := template.New("instructions").Option("missingkey=error").Parse(instructions)
	if err != nil {
		return "", err
	}

	data := make(map[string]string, len(params))
	for k, v := range params {
		data[k] = v
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

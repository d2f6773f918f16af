package crew

// Stage is one unit of work in the pipeline. DependsOn holds indices of
// earlier stages whose outputs are concatenated into this stage's context,
// in the order given. Indices must point strictly backwards; Validate
// enforces it, which makes the stage list a DAG by construction.
type Stage struct {
	Name           string
	Instructions   string
	ExpectedOutput string
	Worker         *Worker
	DependsOn      []int
}

// Status tracks a stage through a run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

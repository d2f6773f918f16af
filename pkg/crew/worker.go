package crew

import "github.com/madslabs/mads/pkg/tool"

// ModelConfig is the resolved model configuration a worker carries. Each
// worker holds its own value; there is no shared mutable client state.
type ModelConfig struct {
	Adapter       string  `yaml:"adapter"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
	MaxIterations int     `yaml:"max_iterations"`
}

// Worker is a named role that executes stages. Constructed once during crew
// assembly and treated as read-only afterwards.
type Worker struct {
	Name      string      `yaml:"name"`
	Role      string      `yaml:"role"`
	Objective string      `yaml:"objective"`
	Persona   string      `yaml:"persona"`
	Tools     []tool.Kind `yaml:"tools"`
	Model     ModelConfig `yaml:"model"`
}

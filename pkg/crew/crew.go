package crew

import "fmt"

// Crew is an ordered pipeline of stages and the workers that execute them.
type Crew struct {
	Name        string
	Description string
	Workers     []*Worker
	Stages      []*Stage
}

// SetModel overrides the adapter and/or model on every worker. Empty values
// leave the existing configuration in place. Intended for CLI flags applied
// during crew assembly, before the first run.
func (c *Crew) SetModel(adapterName, model string) {
	for _, w := range c.Workers {
		if adapterName != "" {
			w.Model.Adapter = adapterName
		}
		if model != "" {
			w.Model.Model = model
		}
	}
}

// Validate checks the crew configuration for errors. Dependency indices must
// point strictly backwards and be listed in increasing order, so forward and
// cyclic references cannot be expressed.
func (c *Crew) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("crew name is required")
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("crew must define at least one stage")
	}

	seen := make(map[string]struct{})
	for i, stage := range c.Stages {
		if stage.Name == "" {
			return fmt.Errorf("stage %d: name is required", i)
		}
		if stage.Instructions == "" {
			return fmt.Errorf("stage %s must have instructions", stage.Name)
		}
		if stage.Worker == nil {
			return fmt.Errorf("stage %s must have a worker", stage.Name)
		}
		if _, ok := seen[stage.Name]; ok {
			return fmt.Errorf("duplicate stage name: %s", stage.Name)
		}
		seen[stage.Name] = struct{}{}

		previous := -1
		for _, dep := range stage.DependsOn {
			if dep < 0 || dep >= i {
				return fmt.Errorf("stage %s: dependency index %d must reference an earlier stage", stage.Name, dep)
			}
			if dep <= previous {
				return fmt.Errorf("stage %s: dependency indices must be strictly increasing", stage.Name)
			}
			previous = dep
		}
	}

	return nil
}

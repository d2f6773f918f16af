package crew

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type crewManifest struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Workers     []*Worker       `yaml:"workers"`
	Stages      []stageManifest `yaml:"stages"`
}

type stageManifest struct {
	Name           string   `yaml:"name"`
	Instructions   string   `yaml:"instructions"`
	ExpectedOutput string   `yaml:"expected_output"`
	Worker         string   `yaml:"worker"`
	DependsOn      []string `yaml:"depends_on"`
}

// LoadManifest reads a crew definition from a YAML file. Stages reference
// workers by name and dependencies by the name of an earlier stage; both are
// resolved here, then the crew is validated.
func LoadManifest(path string) (*Crew, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest crewManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	workers := make(map[string]*Worker, len(manifest.Workers))
	for _, w := range manifest.Workers {
		if w.Name == "" {
			return nil, fmt.Errorf("worker name is required")
		}
		if _, ok := workers[w.Name]; ok {
			return nil, fmt.Errorf("duplicate worker name: %s", w.Name)
		}
		workers[w.Name] = w
	}

	c := &Crew{
		Name:        manifest.Name,
		Description: manifest.Description,
		Workers:     manifest.Workers,
	}

	stageIndex := make(map[string]int, len(manifest.Stages))
	for i, sm := range manifest.Stages {
		worker, ok := workers[sm.Worker]
		if !ok {
			return nil, fmt.Errorf("stage %s references unknown worker %s", sm.Name, sm.Worker)
		}

		stage := &Stage{
			Name:           sm.Name,
			Instructions:   sm.Instructions,
			ExpectedOutput: sm.ExpectedOutput,
			Worker:         worker,
		}
		for _, dep := range sm.DependsOn {
			idx, ok := stageIndex[dep]
			if !ok {
				return nil, fmt.Errorf("stage %s depends on unknown or later stage %s", sm.Name, dep)
			}
			stage.DependsOn = append(stage.DependsOn, idx)
		}

		c.Stages = append(c.Stages, stage)
		stageIndex[sm.Name] = i
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

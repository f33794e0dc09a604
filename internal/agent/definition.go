// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Definition is a static pipeline: an acyclic set of role tasks.
type Definition struct {
	Name string `yaml:"name"`

	// Final names the task whose output is the pipeline result. Empty means
	// the last task in execution order.
	Final string `yaml:"final,omitempty"`

	// Require lists business parameters that must be present before the run
	// starts.
	Require []string `yaml:"require,omitempty"`

	Tasks []types.AgentTask `yaml:"tasks"`
}

// LoadDefinition reads a YAML pipeline definition from path.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: reading pipeline definition: %v", types.ErrConfiguration, err)
	}
	return ParseDefinition(data)
}

// ParseDefinition decodes and validates a YAML pipeline definition.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("%w: parsing pipeline definition: %v", types.ErrConfiguration, err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate checks that roles are unique and non-empty, every dependency
// names a defined role, the graph is acyclic and Final exists.
func (d Definition) Validate() error {
	_, err := d.Levels()
	return err
}

// Levels groups tasks into execution waves. Every task's dependencies lie
// in earlier waves; within a wave tasks keep their definition order.
func (d Definition) Levels() ([][]types.AgentTask, error) {
	if len(d.Tasks) == 0 {
		return nil, fmt.Errorf("%w: pipeline %q has no tasks", types.ErrConfiguration, d.Name)
	}

	index := make(map[string]int, len(d.Tasks))
	for i, t := range d.Tasks {
		role := strings.TrimSpace(t.Role)
		if role == "" {
			return nil, fmt.Errorf("%w: task %d has no role", types.ErrConfiguration, i+1)
		}
		if _, dup := index[role]; dup {
			return nil, fmt.Errorf("%w: duplicate role %q", types.ErrConfiguration, role)
		}
		index[role] = i
	}
	for _, t := range d.Tasks {
		for _, dep := range t.ContextFrom {
			if _, ok := index[dep]; !ok {
				return nil, fmt.Errorf("%w: role %q depends on unknown role %q", types.ErrConfiguration, t.Role, dep)
			}
			if dep == t.Role {
				return nil, fmt.Errorf("%w: role %q depends on itself", types.ErrConfiguration, t.Role)
			}
		}
	}
	if d.Final != "" {
		if _, ok := index[d.Final]; !ok {
			return nil, fmt.Errorf("%w: final role %q is not defined", types.ErrConfiguration, d.Final)
		}
	}

	level := make(map[string]int, len(d.Tasks))
	placed := 0
	var levels [][]types.AgentTask
	for placed < len(d.Tasks) {
		var wave []types.AgentTask
		for _, t := range d.Tasks {
			if _, done := level[t.Role]; done {
				continue
			}
			ready := true
			for _, dep := range t.ContextFrom {
				if _, ok := level[dep]; !ok {
					ready = false
					break
				}
			}
			if ready {
				wave = append(wave, t)
			}
		}
		if len(wave) == 0 {
			return nil, fmt.Errorf("%w: pipeline %q has a dependency cycle", types.ErrConfiguration, d.Name)
		}
		for _, t := range wave {
			level[t.Role] = len(levels)
		}
		levels = append(levels, wave)
		placed += len(wave)
	}
	return levels, nil
}

// Order returns the tasks in sequential execution order.
func (d Definition) Order() ([]types.AgentTask, error) {
	levels, err := d.Levels()
	if err != nil {
		return nil, err
	}
	var out []types.AgentTask
	for _, wave := range levels {
		out = append(out, wave...)
	}
	return out, nil
}

// FinalRole returns Final, or the role that executes last.
func (d Definition) FinalRole() string {
	if d.Final != "" {
		return d.Final
	}
	order, err := d.Order()
	if err != nil || len(order) == 0 {
		return ""
	}
	return order[len(order)-1].Role
}

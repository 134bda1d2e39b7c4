// Package workflow declares the executable step sequences. A workflow is a
// strictly ordered, fail-fast list of step IDs; the engine resolves and runs
// them one at a time.
package workflow

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition declares an executable workflow composed of steps.
type Definition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []string `json:"steps" yaml:"steps"`
}

// Clone returns a deep copy of the workflow definition.
func (def Definition) Clone() Definition {
	clone := def
	if len(def.Steps) > 0 {
		clone.Steps = make([]string, len(def.Steps))
		copy(clone.Steps, def.Steps)
	}
	return clone
}

// Validate ensures the workflow definition is self-consistent.
func (def Definition) Validate() error {
	if def.ID == "" {
		return fmt.Errorf("workflow: id is required")
	}
	if len(def.Steps) == 0 {
		return fmt.Errorf("workflow %s: at least one step is required", def.ID)
	}
	seen := map[string]struct{}{}
	for idx, id := range def.Steps {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			return fmt.Errorf("workflow %s: step[%d] id is empty", def.ID, idx)
		}
		if _, exists := seen[trimmed]; exists {
			return fmt.Errorf("workflow %s: duplicate step id %s", def.ID, trimmed)
		}
		seen[trimmed] = struct{}{}
	}
	return nil
}

// Normalized clones the definition, trims step IDs, and validates the result.
func (def Definition) Normalized() (Definition, error) {
	clone := def.Clone()
	for i := range clone.Steps {
		clone.Steps[i] = strings.TrimSpace(clone.Steps[i])
	}
	if err := clone.Validate(); err != nil {
		return Definition{}, err
	}
	return clone, nil
}

// ParseDefinitionYAML decodes and validates a workflow definition document.
func ParseDefinitionYAML(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("workflow: parse definition: %w", err)
	}
	return def.Normalized()
}

// Step IDs shared between the built-in definitions and the step packages.
const (
	StepPreflight   = "preflight"
	StepBuild       = "build"
	StepCheck       = "check"
	StepInstall     = "install"
	StepImportProbe = "import-probe"
	StepEntrypoint  = "entrypoint"
	StepPublish     = "publish"
)

// Publish is the build-review-upload workflow.
func Publish() Definition {
	return Definition{
		ID:          "publish",
		Name:        "Publish to Package Index",
		Description: "Builds the distributions, validates their metadata, and uploads them after operator confirmation.",
		Steps:       []string{StepPreflight, StepBuild, StepCheck, StepPublish},
	}
}

// Verify is the build-install-smoke-test workflow.
func Verify() Definition {
	return Definition{
		ID:          "verify",
		Name:        "Verify Built Package",
		Description: "Builds the distributions, installs the wheel locally, and smoke-tests the import and console script.",
		Steps:       []string{StepPreflight, StepBuild, StepCheck, StepInstall, StepImportProbe, StepEntrypoint},
	}
}

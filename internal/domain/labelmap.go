package domain

import (
	"fmt"
	"strings"
)

// LabelMap maps work-item labels to the TaskSpec fields they populate.
type LabelMap struct {
	Mappings []LabelMapping `yaml:"mappings"`
}

// LabelMapping binds one label to one TaskSpec field.
type LabelMapping struct {
	Label string `yaml:"label"`
	Field string `yaml:"field"`
}

// taskSpecFields are the TaskSpec document fields a label may map to.
var taskSpecFields = map[string]struct{}{
	"workItemId":       {},
	"featureBranch":    {},
	"projectsToEnsure": {},
	"files":            {},
	"tests":            {},
	"commitMessage":    {},
}

// Validate checks the whole map and returns every violation found, not just
// the first: an empty map, empty labels, labels duplicated case-insensitively
// and fields that are not TaskSpec fields.
func (m *LabelMap) Validate() []string {
	var problems []string
	if len(m.Mappings) == 0 {
		problems = append(problems, "label map must define at least one mapping")
		return problems
	}

	seen := make(map[string]string, len(m.Mappings))
	for i, mapping := range m.Mappings {
		if strings.TrimSpace(mapping.Label) == "" {
			problems = append(problems, fmt.Sprintf("mapping %d: label cannot be empty", i+1))
		} else {
			key := strings.ToLower(mapping.Label)
			if prev, ok := seen[key]; ok {
				problems = append(problems, fmt.Sprintf("mapping %d: label %q duplicates %q", i+1, mapping.Label, prev))
			} else {
				seen[key] = mapping.Label
			}
		}
		if _, ok := taskSpecFields[mapping.Field]; !ok {
			problems = append(problems, fmt.Sprintf("mapping %d: unknown field %q", i+1, mapping.Field))
		}
	}
	return problems
}

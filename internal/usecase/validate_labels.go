package usecase

import (
	"context"

	"planforge/internal/domain"
)

// ValidateLabelsInput contains the parameters for label map validation.
type ValidateLabelsInput struct {
	Path string // Label map path (empty = plan/labelmap.yml)
}

// ValidateLabelsOutput contains the validation result. A valid map has
// no violations.
type ValidateLabelsOutput struct {
	Violations []string
	Mappings   int
}

// ValidateLabels is the use case for checking the label-to-field mapping
// document. Every violation is reported, not just the first.
type ValidateLabels struct {
	labels  domain.LabelMapLoader
	logger  domain.Logger
	planDir string
}

// NewValidateLabels creates a new ValidateLabels use case.
func NewValidateLabels(labels domain.LabelMapLoader, logger domain.Logger, planDir string) *ValidateLabels {
	return &ValidateLabels{labels: labels, logger: logger, planDir: planDir}
}

// Execute validates the label map named by the input.
func (uc *ValidateLabels) Execute(_ context.Context, in ValidateLabelsInput) (*ValidateLabelsOutput, error) {
	path := in.Path
	if path == "" {
		path = domain.LabelMapPath(uc.planDir)
	}

	lm, err := uc.labels.Load(path)
	if err != nil {
		return nil, err
	}

	violations := lm.Validate()
	if len(violations) > 0 {
		uc.logger.Warn("", "labels", path+" has violations")
	}

	return &ValidateLabelsOutput{
		Violations: violations,
		Mappings:   len(lm.Mappings),
	}, nil
}

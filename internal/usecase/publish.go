package usecase

import (
	"context"
	"errors"
	"fmt"

	"planforge/internal/domain"
)

// PublishInput contains the parameters for publishing a generation run.
// Empty fields fall back to the taskspec and configuration.
type PublishInput struct {
	ManifestPath string // Manifest to stage from (empty = plan/manifest.txt)
	Message      string // Commit message override
	Branch       string // Branch override
	Remote       string // Remote override
}

// PublishOutput contains the result of a publish run.
// Fields are ordered to minimize memory padding.
type PublishOutput struct {
	Hash      string // Commit hash (empty when nothing was committed)
	Branch    string // Branch the push targeted (empty = HEAD branch)
	Remote    string // Remote pushed to
	Staged    int    // Number of paths staged
	Committed bool
	Pushed    bool
}

// Publish is the use case for staging the manifest's paths, committing
// and pushing them.
type Publish struct {
	publisher    domain.Publisher
	specs        domain.TaskSpecLoader
	configLoader domain.ConfigLoader
	logger       domain.Logger
	planDir      string
}

// NewPublish creates a new Publish use case.
func NewPublish(
	publisher domain.Publisher,
	specs domain.TaskSpecLoader,
	configLoader domain.ConfigLoader,
	logger domain.Logger,
	planDir string,
) *Publish {
	return &Publish{
		publisher:    publisher,
		specs:        specs,
		configLoader: configLoader,
		logger:       logger,
		planDir:      planDir,
	}
}

// Execute publishes whatever the manifest recorded. The commit message
// and branch default to the taskspec's values when one is present; a
// missing taskspec is fine, a malformed one is not.
func (uc *Publish) Execute(ctx context.Context, in PublishInput) (*PublishOutput, error) {
	manifestPath := in.ManifestPath
	if manifestPath == "" {
		manifestPath = domain.ManifestPath(uc.planDir)
	}

	message := in.Message
	branch := in.Branch
	workItemID := ""
	if message == "" || branch == "" {
		spec, err := uc.specs.Load(domain.TaskSpecPath(uc.planDir))
		switch {
		case err == nil:
			workItemID = spec.WorkItemID
			if message == "" {
				message = spec.CommitMessage
			}
			if branch == "" {
				branch = spec.FeatureBranch
			}
		case errors.Is(err, domain.ErrTaskSpecNotFound):
			// Publishing without a taskspec falls back to defaults.
		default:
			return nil, err
		}
	}
	if message == "" {
		message = domain.DefaultCommitMessage
	}

	remote := in.Remote
	if remote == "" && uc.configLoader != nil {
		cfg, err := uc.configLoader.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		remote = cfg.Publish.Remote
	}
	if remote == "" {
		remote = "origin"
	}

	result, err := uc.publisher.Publish(ctx, domain.PublishOptions{
		ManifestPath: manifestPath,
		Message:      message,
		Branch:       branch,
		Remote:       remote,
	})
	if err != nil {
		return nil, err
	}

	if result.Committed {
		uc.logger.Info(workItemID, "publish", fmt.Sprintf("committed %d paths as %s", result.Staged, result.Hash))
	} else {
		uc.logger.Info(workItemID, "publish", "nothing staged, commit skipped")
	}

	return &PublishOutput{
		Hash:      result.Hash,
		Branch:    branch,
		Remote:    remote,
		Staged:    result.Staged,
		Committed: result.Committed,
		Pushed:    result.Pushed,
	}, nil
}

// Package gitpub publishes a generation run: it stages the manifest's
// paths, commits them and pushes the feature branch.
package gitpub

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"planforge/internal/domain"
)

// PushTokenEnv names the environment variable carrying the push token.
const PushTokenEnv = "PLANFORGE_PUSH_TOKEN"

// Committer identity used for automated commits.
const (
	committerName  = "planforge"
	committerEmail = "planforge@localhost"
)

// Ensure Publisher implements domain.Publisher.
var _ domain.Publisher = (*Publisher)(nil)

// Publisher implements domain.Publisher with go-git.
type Publisher struct {
	clock    domain.Clock
	repoPath string
}

// NewPublisher creates a Publisher operating on the repository at repoPath.
func NewPublisher(repoPath string, clock domain.Clock) *Publisher {
	return &Publisher{repoPath: repoPath, clock: clock}
}

// Publish stages the manifest's paths (everything when the manifest is
// missing or empty), commits unless nothing is staged and pushes the result.
// A run that staged nothing returns a zero result without failing.
func (p *Publisher) Publish(ctx context.Context, opts domain.PublishOptions) (*domain.PublishResult, error) {
	repo, err := git.PlainOpen(p.repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotGitRepository, p.repoPath)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	paths, err := manifestPaths(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
			return nil, fmt.Errorf("stage all: %w", err)
		}
	} else {
		for _, path := range paths {
			if _, err := wt.Add(path); err != nil {
				return nil, fmt.Errorf("stage %s: %w", path, err)
			}
		}
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	res := &domain.PublishResult{Staged: stagedCount(status)}
	if res.Staged == 0 {
		return res, nil
	}

	message := opts.Message
	if message == "" {
		message = domain.DefaultCommitMessage
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  committerName,
			Email: committerEmail,
			When:  p.clock.Now(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	res.Committed = true
	res.Hash = hash.String()

	pushOpts := &git.PushOptions{RemoteName: opts.Remote}
	if opts.Branch != "" {
		pushOpts.RefSpecs = []gitconfig.RefSpec{
			gitconfig.RefSpec("HEAD:refs/heads/" + opts.Branch),
		}
	}
	if token := os.Getenv(PushTokenEnv); token != "" {
		pushOpts.Auth = &http.BasicAuth{Username: "x-access-token", Password: token}
	}

	if err := repo.PushContext(ctx, pushOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, fmt.Errorf("push to %s: %w", opts.Remote, err)
	}
	res.Pushed = true

	return res, nil
}

// manifestPaths reads the manifest, one path per line. A missing manifest
// reports no paths, which makes Publish fall back to staging everything.
func manifestPaths(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

// stagedCount counts entries with staged modifications.
func stagedCount(status git.Status) int {
	n := 0
	for _, s := range status {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			n++
		}
	}
	return n
}

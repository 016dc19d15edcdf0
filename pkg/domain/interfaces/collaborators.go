package interfaces

import (
	"context"

	"github.com/m-mizutani/shipit/pkg/domain/model"
)

// GitClient defines the version-control operations the pipeline needs.
type GitClient interface {
	// IsClean reports whether the working tree has no uncommitted changes.
	IsClean(ctx context.Context) (bool, error)

	// TagExists reports whether the tag already exists locally.
	TagExists(ctx context.Context, tag string) bool

	// Add stages the given paths.
	Add(ctx context.Context, paths ...string) error

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// Push pushes a branch or tag ref to the remote.
	Push(ctx context.Context, remote, ref string) error

	// CreateTag creates a lightweight tag at HEAD.
	CreateTag(ctx context.Context, tag string) error

	// ForceTag moves tag to point at target, creating it if needed.
	ForceTag(ctx context.Context, tag, target string) error

	// ForcePush force-pushes a ref to the remote.
	ForcePush(ctx context.Context, remote, ref string) error
}

// ActionsClient defines operations against the CI host CLI.
type ActionsClient interface {
	// Installed reports whether the CLI is available on PATH.
	Installed() error

	// ListRuns lists runs of the named workflow filtered by branch/ref.
	ListRuns(ctx context.Context, workflow, branch string) ([]model.WorkflowRun, error)

	// WatchRun blocks until the run reaches a terminal state.
	WatchRun(ctx context.Context, runID int64) error

	// RunConclusion fetches the conclusion of a completed run.
	RunConclusion(ctx context.Context, runID int64) (model.Conclusion, error)

	// SetSecret stores a repository secret.
	SetSecret(ctx context.Context, name, value string) error
}

// BuildTool defines operations against the package build CLI.
type BuildTool interface {
	// Installed reports whether the CLI is available on PATH.
	Installed() error

	// Build runs a release build, regenerating the lockfile as a side effect.
	Build(ctx context.Context) error

	// Publish uploads the package to the registry.
	Publish(ctx context.Context) error
}

// Prompter abstracts interactive confirmation and input.
type Prompter interface {
	// Confirm asks a yes/no question. An empty answer yields defaultYes; any
	// answer starting with "y" or "Y" is an accept.
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)

	// Ask reads a single line of input for the given prompt.
	Ask(ctx context.Context, message string) (string, error)
}

// Notifier announces a completed release to an external channel.
type Notifier interface {
	NotifyReleased(ctx context.Context, req *model.ReleaseRequest, runURL string) error
}

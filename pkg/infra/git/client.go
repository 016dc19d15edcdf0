// Package git wraps the git CLI for the release pipeline.
package git

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipit/pkg/domain/interfaces"
	"github.com/m-mizutani/shipit/pkg/utils/execx"
)

type client struct {
	runner *execx.Runner
}

// New creates a git client operating in the given repository directory.
func New(dir string) interfaces.GitClient {
	return &client{runner: execx.New(dir)}
}

// IsClean reports whether `git status --porcelain` output is empty.
func (x *client) IsClean(ctx context.Context) (bool, error) {
	out, err := x.runner.Run(ctx, "git", "status", "--porcelain")
	if err != nil {
		return false, goerr.Wrap(err, "failed to get working tree status")
	}
	return out == "", nil
}

// TagExists reports whether the tag resolves in the local tag namespace.
func (x *client) TagExists(ctx context.Context, tag string) bool {
	_, err := x.runner.Run(ctx, "git", "rev-parse", "--verify", "--quiet", "refs/tags/"+tag)
	return err == nil
}

func (x *client) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	if _, err := x.runner.Run(ctx, "git", args...); err != nil {
		return goerr.Wrap(err, "failed to stage files", goerr.V("paths", paths))
	}
	return nil
}

func (x *client) Commit(ctx context.Context, message string) error {
	if _, err := x.runner.Run(ctx, "git", "commit", "-m", message); err != nil {
		return goerr.Wrap(err, "failed to commit")
	}
	return nil
}

func (x *client) Push(ctx context.Context, remote, ref string) error {
	if _, err := x.runner.Run(ctx, "git", "push", remote, ref); err != nil {
		return goerr.Wrap(err, "failed to push", goerr.V("remote", remote), goerr.V("ref", ref))
	}
	return nil
}

func (x *client) CreateTag(ctx context.Context, tag string) error {
	if _, err := x.runner.Run(ctx, "git", "tag", tag); err != nil {
		return goerr.Wrap(err, "failed to create tag", goerr.V("tag", tag))
	}
	return nil
}

func (x *client) ForceTag(ctx context.Context, tag, target string) error {
	if _, err := x.runner.Run(ctx, "git", "tag", "-f", tag, target); err != nil {
		return goerr.Wrap(err, "failed to move tag", goerr.V("tag", tag), goerr.V("target", target))
	}
	return nil
}

func (x *client) ForcePush(ctx context.Context, remote, ref string) error {
	if _, err := x.runner.Run(ctx, "git", "push", "--force", remote, ref); err != nil {
		return goerr.Wrap(err, "failed to force-push", goerr.V("remote", remote), goerr.V("ref", ref))
	}
	return nil
}

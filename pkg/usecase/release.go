package usecase

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/shipit/pkg/domain/interfaces"
	"github.com/m-mizutani/shipit/pkg/domain/model"
	"github.com/m-mizutani/shipit/pkg/domain/types"
	"github.com/m-mizutani/shipit/pkg/utils/retry"
)

type releaseUseCase struct {
	git     interfaces.GitClient
	actions interfaces.ActionsClient
	build   interfaces.BuildTool
	prompt  interfaces.Prompter

	notifier interfaces.Notifier

	workflow  string
	remote    string
	branch    string
	manifest  string
	lockfile  string
	changelog string

	locate retry.Policy
	now    func() time.Time
}

// ReleaseOption configures the release use case.
type ReleaseOption func(*releaseUseCase)

// WithWorkflow sets the CI workflow queried for the release run.
func WithWorkflow(name string) ReleaseOption {
	return func(uc *releaseUseCase) { uc.workflow = name }
}

// WithRemote sets the git remote pushed to.
func WithRemote(remote string) ReleaseOption {
	return func(uc *releaseUseCase) { uc.remote = remote }
}

// WithBranch sets the integration branch the release commit is pushed to.
func WithBranch(branch string) ReleaseOption {
	return func(uc *releaseUseCase) { uc.branch = branch }
}

// WithManifest sets the manifest file path.
func WithManifest(path string) ReleaseOption {
	return func(uc *releaseUseCase) { uc.manifest = path }
}

// WithLockfile sets the lockfile path staged alongside the manifest.
func WithLockfile(path string) ReleaseOption {
	return func(uc *releaseUseCase) { uc.lockfile = path }
}

// WithChangelog sets the changelog file path.
func WithChangelog(path string) ReleaseOption {
	return func(uc *releaseUseCase) { uc.changelog = path }
}

// WithLocatePolicy overrides the run locator retry schedule.
func WithLocatePolicy(p retry.Policy) ReleaseOption {
	return func(uc *releaseUseCase) { uc.locate = p }
}

// WithNotifier enables a release notification after finalization.
func WithNotifier(n interfaces.Notifier) ReleaseOption {
	return func(uc *releaseUseCase) { uc.notifier = n }
}

// WithClock overrides the clock used for changelog dates, for tests.
func WithClock(now func() time.Time) ReleaseOption {
	return func(uc *releaseUseCase) { uc.now = now }
}

// NewRelease creates the release pipeline use case.
func NewRelease(git interfaces.GitClient, actions interfaces.ActionsClient, build interfaces.BuildTool, prompt interfaces.Prompter, opts ...ReleaseOption) interfaces.ReleaseUseCase {
	uc := &releaseUseCase{
		git:       git,
		actions:   actions,
		build:     build,
		prompt:    prompt,
		workflow:  "release.yml",
		remote:    "origin",
		branch:    "main",
		manifest:  "Cargo.toml",
		lockfile:  "Cargo.lock",
		changelog: "CHANGELOG.md",
		locate: retry.Policy{
			Attempts: 10,
			Interval: 3 * time.Second,
			Grace:    5 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run executes the pipeline: preflight, local mutation, tag publish, run
// location, watch, finalization. Control flows strictly forward; every error
// is terminal and nothing is rolled back.
func (uc *releaseUseCase) Run(ctx context.Context, req *model.ReleaseRequest) error {
	logger := ctxlog.From(ctx)
	logger.Info("starting release", "version", req.Version, "tag", req.Tag())

	if _, err := uc.preflight(ctx, req); err != nil {
		return err
	}
	if err := uc.mutate(ctx, req); err != nil {
		return err
	}
	if err := uc.publishTag(ctx, req); err != nil {
		return err
	}

	run, err := uc.locateRun(ctx, req)
	if err != nil {
		return err
	}
	if err := uc.watch(ctx, run); err != nil {
		return err
	}

	return uc.finalize(ctx, req, run)
}

// preflight runs the read-only precondition checks in order, stopping at the
// first failure. It is safe to re-run any number of times.
func (uc *releaseUseCase) preflight(ctx context.Context, req *model.ReleaseRequest) (*model.PreflightReport, error) {
	logger := ctxlog.From(ctx)
	report := &model.PreflightReport{}

	checks := []struct {
		name string
		run  func() (bool, string, error)
	}{
		{"gh installed", func() (bool, string, error) {
			if err := uc.actions.Installed(); err != nil {
				return false, "gh CLI is not installed", nil
			}
			return true, "", nil
		}},
		{"cargo installed", func() (bool, string, error) {
			if err := uc.build.Installed(); err != nil {
				return false, "cargo CLI is not installed", nil
			}
			return true, "", nil
		}},
		{"working tree clean", func() (bool, string, error) {
			clean, err := uc.git.IsClean(ctx)
			if err != nil {
				return false, "", err
			}
			if !clean {
				return false, "working tree has uncommitted changes", nil
			}
			return true, "", nil
		}},
		{"tag absent", func() (bool, string, error) {
			if uc.git.TagExists(ctx, req.Tag()) {
				return false, "tag " + req.Tag() + " already exists", nil
			}
			return true, "", nil
		}},
		{"changelog marker", func() (bool, string, error) {
			content, err := os.ReadFile(uc.changelog)
			if err != nil {
				return false, "cannot read " + uc.changelog, nil
			}
			if _, err := RewriteChangelog(content, req.Version, uc.now()); err != nil {
				return false, uc.changelog + " has no " + UnreleasedMarker + " section", nil
			}
			return true, "", nil
		}},
	}

	for _, check := range checks {
		ok, detail, err := check.run()
		if err != nil {
			return report, goerr.Wrap(err, "preflight check errored", goerr.V("check", check.name))
		}
		report.Checks = append(report.Checks, model.PreflightCheck{Name: check.name, OK: ok, Detail: detail})
		if !ok {
			return report, goerr.Wrap(types.ErrPreflightFailed, detail, goerr.V("check", check.name))
		}
		logger.Debug("preflight check passed", "check", check.name)
	}

	logger.Info("preflight passed", "checks", len(report.Checks))
	return report, nil
}

// mutate rewrites the changelog and manifest, verifies the build, and pushes
// the release commit. Steps already completed are not rolled back on a later
// failure; before the commit the edits exist only in the working tree.
func (uc *releaseUseCase) mutate(ctx context.Context, req *model.ReleaseRequest) error {
	logger := ctxlog.From(ctx)

	changelog, err := os.ReadFile(uc.changelog)
	if err != nil {
		return goerr.Wrap(err, "failed to read changelog", goerr.T(types.TagMutation), goerr.V("path", uc.changelog))
	}
	rewritten, err := RewriteChangelog(changelog, req.Version, uc.now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(uc.changelog, rewritten, 0644); err != nil {
		return goerr.Wrap(err, "failed to write changelog", goerr.T(types.TagMutation), goerr.V("path", uc.changelog))
	}
	logger.Info("updated changelog", "path", uc.changelog)

	manifestData, err := os.ReadFile(uc.manifest)
	if err != nil {
		return goerr.Wrap(err, "failed to read manifest", goerr.T(types.TagMutation), goerr.V("path", uc.manifest))
	}
	current, err := ParseManifestVersion(manifestData)
	if err != nil {
		return err
	}
	bumped, err := RewriteManifest(manifestData, req.Version)
	if err != nil {
		return err
	}
	if err := os.WriteFile(uc.manifest, bumped, 0644); err != nil {
		return goerr.Wrap(err, "failed to write manifest", goerr.T(types.TagMutation), goerr.V("path", uc.manifest))
	}
	logger.Info("bumped manifest version", "path", uc.manifest, "from", current, "to", req.Version)

	if err := uc.build.Build(ctx); err != nil {
		return goerr.Wrap(err, "build verification failed, local edits left uncommitted for inspection", goerr.T(types.TagMutation))
	}

	if err := uc.git.Add(ctx, uc.manifest, uc.lockfile, uc.changelog); err != nil {
		return goerr.Wrap(err, "failed to stage release files", goerr.T(types.TagMutation))
	}
	if err := uc.git.Commit(ctx, req.CommitMessage()); err != nil {
		return goerr.Wrap(err, "failed to create release commit", goerr.T(types.TagMutation))
	}
	if err := uc.git.Push(ctx, uc.remote, uc.branch); err != nil {
		return goerr.Wrap(err, "failed to push release commit, local commit remains", goerr.T(types.TagMutation), goerr.V("branch", uc.branch))
	}

	logger.Info("pushed release commit", "branch", uc.branch, "message", req.CommitMessage())
	return nil
}

// publishTag creates and pushes the release tag. This is the point of no
// return: a successful push triggers the CI workflow. A push failure is
// reported as ambiguous and never retried with a different tag name, which
// would desynchronize the manifest from the released tag.
func (uc *releaseUseCase) publishTag(ctx context.Context, req *model.ReleaseRequest) error {
	logger := ctxlog.From(ctx)

	if err := uc.git.CreateTag(ctx, req.Tag()); err != nil {
		return goerr.Wrap(types.ErrTagAmbiguous, "failed to create tag", goerr.V("tag", req.Tag()), goerr.V("cause", err.Error()))
	}
	if err := uc.git.Push(ctx, uc.remote, req.Tag()); err != nil {
		return goerr.Wrap(types.ErrTagAmbiguous, "check whether "+req.Tag()+" was already released", goerr.V("tag", req.Tag()), goerr.V("cause", err.Error()))
	}

	logger.Info("pushed release tag", "tag", req.Tag())
	return nil
}

// locateRun discovers the workflow run triggered by the tag push. The CI
// index is eventually consistent, so this polls with a fixed interval after
// an initial grace sleep. A listing error on one attempt is not terminal.
func (uc *releaseUseCase) locateRun(ctx context.Context, req *model.ReleaseRequest) (model.WorkflowRun, error) {
	logger := ctxlog.From(ctx)
	attempt := 0

	run, err := retry.Do(ctx, uc.locate, func(ctx context.Context) (model.WorkflowRun, bool, error) {
		attempt++
		runs, err := uc.actions.ListRuns(ctx, uc.workflow, req.Tag())
		if err != nil {
			logger.Warn("run listing failed, will retry", "attempt", attempt, "error", err)
			return model.WorkflowRun{}, false, nil
		}
		for _, r := range runs {
			if r.HeadBranch == req.Tag() {
				return r, true, nil
			}
		}
		logger.Debug("run not indexed yet", "attempt", attempt)
		return model.WorkflowRun{}, false, nil
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return model.WorkflowRun{}, goerr.Wrap(types.ErrRunNotFound,
				"check the Actions page manually, the tag and commit are already pushed",
				goerr.V("tag", req.Tag()), goerr.V("workflow", uc.workflow))
		}
		return model.WorkflowRun{}, err
	}

	logger.Info("located release workflow run", "run_id", run.ID, "url", run.URL)
	return run, nil
}

// watch blocks on the run until it reaches a terminal state and verifies the
// conclusion. Anything but success is terminal; artifacts are left for
// manual inspection.
func (uc *releaseUseCase) watch(ctx context.Context, run model.WorkflowRun) error {
	logger := ctxlog.From(ctx)

	if err := uc.actions.WatchRun(ctx, run.ID); err != nil {
		return goerr.Wrap(err, "failed while watching workflow run", goerr.V("run_id", run.ID), goerr.V("url", run.URL))
	}

	conclusion, err := uc.actions.RunConclusion(ctx, run.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch run conclusion", goerr.V("run_id", run.ID), goerr.V("url", run.URL))
	}
	if !conclusion.Success() {
		return goerr.Wrap(types.ErrWorkflowFailed, "inspect the run before retrying",
			goerr.V("run_id", run.ID), goerr.V("conclusion", string(conclusion)), goerr.V("url", run.URL))
	}

	logger.Info("release workflow succeeded", "run_id", run.ID)
	return nil
}

// finalize optionally publishes the package, then unconditionally force-moves
// the floating major tag. The major tag move is a public signal of release
// completion and must never happen before CI success.
func (uc *releaseUseCase) finalize(ctx context.Context, req *model.ReleaseRequest, run model.WorkflowRun) error {
	logger := ctxlog.From(ctx)

	publish, err := uc.prompt.Confirm(ctx, "Publish to crates.io?", true)
	if err != nil {
		return goerr.Wrap(err, "failed to read publish confirmation")
	}
	if publish {
		if err := uc.build.Publish(ctx); err != nil {
			return goerr.Wrap(err, "publish failed, the release itself is complete and is not undone", goerr.V("tag", req.Tag()))
		}
		logger.Info("published package", "version", req.Version)
	} else {
		logger.Info("skipped package publish")
	}

	if err := uc.git.ForceTag(ctx, req.MajorTag(), req.Tag()); err != nil {
		return goerr.Wrap(err, "failed to move major tag", goerr.V("major_tag", req.MajorTag()))
	}
	if err := uc.git.ForcePush(ctx, uc.remote, req.MajorTag()); err != nil {
		return goerr.Wrap(err, "failed to push major tag", goerr.V("major_tag", req.MajorTag()))
	}
	logger.Info("moved major tag", "major_tag", req.MajorTag(), "target", req.Tag())

	if uc.notifier != nil {
		if err := uc.notifier.NotifyReleased(ctx, req, run.URL); err != nil {
			logger.Warn("release notification failed", "error", err)
		}
	}

	return nil
}

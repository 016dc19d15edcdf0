// Package gh wraps the GitHub CLI for workflow run queries and secrets.
package gh

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipit/pkg/domain/interfaces"
	"github.com/m-mizutani/shipit/pkg/domain/model"
	"github.com/m-mizutani/shipit/pkg/utils/execx"
)

type client struct {
	runner *execx.Runner
}

// New creates a gh client operating in the given repository directory.
func New(dir string) interfaces.ActionsClient {
	return &client{runner: execx.New(dir)}
}

// Installed reports whether the gh CLI is available.
func (x *client) Installed() error {
	return execx.Installed("gh")
}

type runEntry struct {
	DatabaseID int64  `json:"databaseId"`
	HeadBranch string `json:"headBranch"`
	URL        string `json:"url"`
}

// ListRuns queries runs of the named workflow filtered by branch. The branch
// filter is applied server-side; callers are expected to re-check the head
// branch since the query-level filter may be approximate.
func (x *client) ListRuns(ctx context.Context, workflow, branch string) ([]model.WorkflowRun, error) {
	out, err := x.runner.Run(ctx, "gh", "run", "list",
		"--workflow", workflow,
		"--branch", branch,
		"--json", "databaseId,headBranch,url",
		"--limit", "20",
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workflow runs", goerr.V("workflow", workflow), goerr.V("branch", branch))
	}

	runs, err := parseRuns([]byte(out))
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func parseRuns(data []byte) ([]model.WorkflowRun, error) {
	var entries []runEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, goerr.Wrap(err, "failed to parse run list output", goerr.V("output", string(data)))
	}

	runs := make([]model.WorkflowRun, 0, len(entries))
	for _, e := range entries {
		runs = append(runs, model.WorkflowRun{
			ID:         e.DatabaseID,
			HeadBranch: e.HeadBranch,
			URL:        e.URL,
		})
	}
	return runs, nil
}

// WatchRun blocks until the run reaches a terminal state, streaming gh's own
// progress output to the terminal.
func (x *client) WatchRun(ctx context.Context, runID int64) error {
	if err := x.runner.RunPassthrough(ctx, "gh", "run", "watch", strconv.FormatInt(runID, 10)); err != nil {
		return goerr.Wrap(err, "failed to watch workflow run", goerr.V("run_id", runID))
	}
	return nil
}

// RunConclusion fetches the conclusion of a completed run.
func (x *client) RunConclusion(ctx context.Context, runID int64) (model.Conclusion, error) {
	out, err := x.runner.Run(ctx, "gh", "run", "view", strconv.FormatInt(runID, 10), "--json", "conclusion")
	if err != nil {
		return "", goerr.Wrap(err, "failed to view workflow run", goerr.V("run_id", runID))
	}

	var view struct {
		Conclusion string `json:"conclusion"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		return "", goerr.Wrap(err, "failed to parse run view output", goerr.V("output", out))
	}
	return model.Conclusion(view.Conclusion), nil
}

// SetSecret stores a repository secret, passing the value via stdin so it
// never appears in the process list.
func (x *client) SetSecret(ctx context.Context, name, value string) error {
	if _, err := x.runner.RunWithStdin(ctx, value, "gh", "secret", "set", name); err != nil {
		return goerr.Wrap(err, "failed to set secret", goerr.V("name", name))
	}
	return nil
}

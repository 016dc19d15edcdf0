package types

import "github.com/m-mizutani/goerr/v2"

// Tags classify pipeline errors by the stage that raised them. Every error
// returned from the release use case carries exactly one of these.
var (
	TagUsage     = goerr.NewTag("usage")
	TagPreflight = goerr.NewTag("preflight")
	TagMutation  = goerr.NewTag("mutation")
	TagPublish   = goerr.NewTag("publish")
	TagLocate    = goerr.NewTag("locate")
	TagWatch     = goerr.NewTag("watch")
)

var (
	// ErrUsage indicates a missing or empty version argument. No side effects
	// have been performed when this is returned.
	ErrUsage = goerr.New("version argument is missing or empty", goerr.T(TagUsage))

	// ErrPreflightFailed indicates a read-only precondition check failed.
	// The failed check name is attached as a value.
	ErrPreflightFailed = goerr.New("preflight check failed", goerr.T(TagPreflight))

	// ErrChangelogFormat indicates the changelog lacks the unreleased marker.
	ErrChangelogFormat = goerr.New("changelog has no unreleased section marker", goerr.T(TagMutation))

	// ErrManifestVersion indicates the manifest version line could not be
	// uniquely identified (zero or multiple candidate lines).
	ErrManifestVersion = goerr.New("manifest version line is not unique", goerr.T(TagMutation))

	// ErrTagAmbiguous indicates the tag push failed, possibly because another
	// process released the same version. The pipeline never retries with a
	// different tag name.
	ErrTagAmbiguous = goerr.New("tag push failed, version may already be released", goerr.T(TagPublish))

	// ErrRunNotFound indicates the workflow run triggered by the tag push was
	// not indexed within the retry budget. The tag and commit are already
	// public; only the confirmation failed.
	ErrRunNotFound = goerr.New("release workflow run not found", goerr.T(TagLocate))

	// ErrWorkflowFailed indicates the release workflow reached a terminal
	// state other than success.
	ErrWorkflowFailed = goerr.New("release workflow did not succeed", goerr.T(TagWatch))
)

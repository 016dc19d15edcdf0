package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipit/pkg/domain/types"
)

// ReleaseRequest is the immutable input of the release pipeline. Version is
// the normalized form with a single leading "v"/"V" stripped.
type ReleaseRequest struct {
	Raw     string
	Version string
}

// NewReleaseRequest normalizes the raw version argument. It strips at most
// one leading "v" or "V" and rejects inputs that are empty before or after
// normalization.
func NewReleaseRequest(raw string) (*ReleaseRequest, error) {
	if raw == "" {
		return nil, goerr.Wrap(types.ErrUsage, "no version given")
	}

	version := raw
	if version[0] == 'v' || version[0] == 'V' {
		version = version[1:]
	}
	if version == "" {
		return nil, goerr.Wrap(types.ErrUsage, "version is empty after normalization", goerr.V("input", raw))
	}

	return &ReleaseRequest{Raw: raw, Version: version}, nil
}

// Tag returns the git tag name for the release.
func (x *ReleaseRequest) Tag() string {
	return "v" + x.Version
}

// MajorTag returns the floating major tag, e.g. "v1" for version "1.2.0".
// A version with no dot yields "v" plus the whole version.
func (x *ReleaseRequest) MajorTag() string {
	major, _, _ := strings.Cut(x.Version, ".")
	return "v" + major
}

// CommitMessage returns the deterministic release commit message.
func (x *ReleaseRequest) CommitMessage() string {
	return "Release v" + x.Version
}

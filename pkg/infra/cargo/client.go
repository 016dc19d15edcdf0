// Package cargo wraps the cargo CLI for build verification and publishing.
package cargo

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipit/pkg/domain/interfaces"
	"github.com/m-mizutani/shipit/pkg/utils/execx"
)

type client struct {
	runner *execx.Runner
}

// New creates a cargo client operating in the given crate directory.
func New(dir string) interfaces.BuildTool {
	return &client{runner: execx.New(dir)}
}

// Installed reports whether the cargo CLI is available.
func (x *client) Installed() error {
	return execx.Installed("cargo")
}

// Build runs a release build. Cargo regenerates Cargo.lock as a side effect
// when the manifest version changed.
func (x *client) Build(ctx context.Context) error {
	if err := x.runner.RunPassthrough(ctx, "cargo", "build", "--release"); err != nil {
		return goerr.Wrap(err, "release build failed")
	}
	return nil
}

// Publish uploads the crate to the registry.
func (x *client) Publish(ctx context.Context) error {
	if err := x.runner.RunPassthrough(ctx, "cargo", "publish"); err != nil {
		return goerr.Wrap(err, "failed to publish crate")
	}
	return nil
}

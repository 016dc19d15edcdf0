package interfaces

import (
	"context"

	"github.com/m-mizutani/shipit/pkg/domain/model"
)

// ReleaseUseCase drives the release pipeline from preflight to finalization.
type ReleaseUseCase interface {
	// Run executes the pipeline for the given request. Every returned error
	// is terminal for the process.
	Run(ctx context.Context, req *model.ReleaseRequest) error
}

// SetupUseCase collects CI secrets interactively and stores them.
type SetupUseCase interface {
	Run(ctx context.Context) error
}

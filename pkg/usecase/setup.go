package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/shipit/pkg/domain/interfaces"
	"github.com/m-mizutani/shipit/pkg/domain/model"
)

// SecretSpec describes one credential the CI workflow needs. Optional
// entries may be left empty.
type SecretSpec struct {
	Name     string
	Usage    string
	Optional bool
}

var setupSecrets = []SecretSpec{
	{Name: "BLUESKY_IDENTIFIER", Usage: "Bluesky handle or DID"},
	{Name: "BLUESKY_APP_PASSWORD", Usage: "Bluesky app password"},
	{Name: "BLUESKY_PDS_HOST", Usage: "Bluesky PDS host (empty for bsky.social)", Optional: true},
	{Name: "MASTODON_INSTANCE_URL", Usage: "Mastodon instance URL"},
	{Name: "MASTODON_ACCESS_TOKEN", Usage: "Mastodon access token"},
}

type setupUseCase struct {
	actions interfaces.ActionsClient
	prompt  interfaces.Prompter
	specs   []SecretSpec
}

// SetupOption configures the setup use case.
type SetupOption func(*setupUseCase)

// WithSecretSpecs overrides the collected secrets, for tests.
func WithSecretSpecs(specs []SecretSpec) SetupOption {
	return func(uc *setupUseCase) { uc.specs = specs }
}

// NewSetup creates the interactive secret setup use case.
func NewSetup(actions interfaces.ActionsClient, prompt interfaces.Prompter, opts ...SetupOption) interfaces.SetupUseCase {
	uc := &setupUseCase{
		actions: actions,
		prompt:  prompt,
		specs:   setupSecrets,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run collects each secret interactively and stores the confirmed entries.
// An entry joins the accumulator only after its value is entered and kept;
// nothing is speculatively inserted and removed on decline.
func (uc *setupUseCase) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	var entries []model.SecretEntry
	for _, spec := range uc.specs {
		value, err := uc.prompt.Ask(ctx, spec.Name+" ("+spec.Usage+")")
		if err != nil {
			return goerr.Wrap(err, "failed to read secret value", goerr.V("name", spec.Name))
		}
		if value == "" {
			if spec.Optional {
				logger.Info("skipped optional secret", "name", spec.Name)
				continue
			}
			return goerr.New("required secret not provided", goerr.V("name", spec.Name))
		}

		keep, err := uc.prompt.Confirm(ctx, "Store "+spec.Name+"?", true)
		if err != nil {
			return goerr.Wrap(err, "failed to read confirmation", goerr.V("name", spec.Name))
		}
		if !keep {
			logger.Info("discarded secret", "name", spec.Name)
			continue
		}

		entries = append(entries, model.SecretEntry{Name: spec.Name, Value: value})
	}

	for _, entry := range entries {
		if err := uc.actions.SetSecret(ctx, entry.Name, entry.Value); err != nil {
			return goerr.Wrap(err, "failed to store secret", goerr.V("name", entry.Name))
		}
		logger.Info("stored secret", "entry", entry)
	}

	logger.Info("setup complete", "stored", len(entries))
	return nil
}

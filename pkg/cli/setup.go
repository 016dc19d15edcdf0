package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/shipit/pkg/infra/gh"
	"github.com/m-mizutani/shipit/pkg/usecase"
	"github.com/m-mizutani/shipit/pkg/utils/prompt"
)

func cmdSetup() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Collect CI credentials interactively and store them as repository secrets",
		Action: func(ctx context.Context, c *cli.Command) error {
			uc := usecase.NewSetup(gh.New("."), prompt.New(os.Stdin, os.Stdout))
			return uc.Run(ctx)
		},
	}
}

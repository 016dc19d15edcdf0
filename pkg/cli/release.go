package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/shipit/pkg/cli/config"
	"github.com/m-mizutani/shipit/pkg/domain/model"
	"github.com/m-mizutani/shipit/pkg/infra/cargo"
	"github.com/m-mizutani/shipit/pkg/infra/gh"
	"github.com/m-mizutani/shipit/pkg/infra/git"
	"github.com/m-mizutani/shipit/pkg/infra/notify"
	"github.com/m-mizutani/shipit/pkg/usecase"
	"github.com/m-mizutani/shipit/pkg/utils/prompt"
)

func cmdRelease() *cli.Command {
	var (
		releaseCfg config.Release
		notifyCfg  config.Notify
	)

	flags := append(releaseCfg.Flags(), notifyCfg.Flags()...)

	return &cli.Command{
		Name:      "release",
		Aliases:   []string{"r"},
		Usage:     "Cut a new release",
		ArgsUsage: "<version>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			req, err := model.NewReleaseRequest(c.Args().First())
			if err != nil {
				fmt.Fprintf(os.Stderr, "usage: %s release <version>\n", c.Root().Name)
				return err
			}

			// One session ID per invocation for log correlation
			logger := ctxlog.From(ctx).With(slog.String("session", uuid.NewString()))
			ctx = ctxlog.With(ctx, logger)

			opts := []usecase.ReleaseOption{
				usecase.WithWorkflow(releaseCfg.Workflow),
				usecase.WithRemote(releaseCfg.Remote),
				usecase.WithBranch(releaseCfg.Branch),
				usecase.WithManifest(releaseCfg.Manifest),
				usecase.WithLockfile(releaseCfg.Lockfile),
				usecase.WithChangelog(releaseCfg.Changelog),
			}
			if notifyCfg.SlackWebhook != "" {
				opts = append(opts, usecase.WithNotifier(notify.NewSlack(notifyCfg.SlackWebhook)))
			}

			uc := usecase.NewRelease(
				git.New("."),
				gh.New("."),
				cargo.New("."),
				prompt.New(os.Stdin, os.Stdout),
				opts...,
			)

			if err := uc.Run(ctx, req); err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Release %s failed\n", req.Tag())
				return err
			}

			color.New(color.FgGreen, color.Bold).Printf("Released %s\n", req.Tag())
			return nil
		},
	}
}

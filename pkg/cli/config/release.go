package config

import "github.com/urfave/cli/v3"

// Release holds release pipeline configuration
type Release struct {
	Workflow  string
	Remote    string
	Branch    string
	Manifest  string
	Lockfile  string
	Changelog string
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workflow",
			Usage:       "CI workflow name or file queried for the release run",
			Value:       "release.yml",
			Destination: &c.Workflow,
			Sources:     cli.EnvVars("SHIPIT_WORKFLOW"),
		},
		&cli.StringFlag{
			Name:        "remote",
			Usage:       "Git remote to push to",
			Value:       "origin",
			Destination: &c.Remote,
			Sources:     cli.EnvVars("SHIPIT_REMOTE"),
		},
		&cli.StringFlag{
			Name:        "branch",
			Usage:       "Integration branch the release commit is pushed to",
			Value:       "main",
			Destination: &c.Branch,
			Sources:     cli.EnvVars("SHIPIT_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "manifest",
			Usage:       "Package manifest path",
			Value:       "Cargo.toml",
			Destination: &c.Manifest,
			Sources:     cli.EnvVars("SHIPIT_MANIFEST"),
		},
		&cli.StringFlag{
			Name:        "lockfile",
			Usage:       "Dependency lockfile path",
			Value:       "Cargo.lock",
			Destination: &c.Lockfile,
			Sources:     cli.EnvVars("SHIPIT_LOCKFILE"),
		},
		&cli.StringFlag{
			Name:        "changelog",
			Usage:       "Changelog path",
			Value:       "CHANGELOG.md",
			Destination: &c.Changelog,
			Sources:     cli.EnvVars("SHIPIT_CHANGELOG"),
		},
	}
}

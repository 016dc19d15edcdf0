package config

import "github.com/urfave/cli/v3"

// Notify holds release notification configuration
type Notify struct {
	SlackWebhook string
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook",
			Usage:       "Slack incoming webhook URL notified after a release (empty to disable)",
			Destination: &c.SlackWebhook,
			Sources:     cli.EnvVars("SHIPIT_SLACK_WEBHOOK"),
		},
	}
}

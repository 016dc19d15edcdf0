// Package notify announces completed releases to external channels.
package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/shipit/pkg/domain/interfaces"
	"github.com/m-mizutani/shipit/pkg/domain/model"
)

type slackNotifier struct {
	webhookURL string
}

// NewSlack creates a notifier posting to a Slack incoming webhook.
func NewSlack(webhookURL string) interfaces.Notifier {
	return &slackNotifier{webhookURL: webhookURL}
}

func (x *slackNotifier) NotifyReleased(ctx context.Context, req *model.ReleaseRequest, runURL string) error {
	text := fmt.Sprintf("Released %s", req.Tag())
	if runURL != "" {
		text += fmt.Sprintf(" (%s)", runURL)
	}

	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, x.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post release notification")
	}
	return nil
}

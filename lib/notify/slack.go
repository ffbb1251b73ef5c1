package notify

import (
	"context"
	"fmt"
	"sync"

	"mentorship/lib/data"
	"mentorship/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

const (
	colorInfo  = "#36a64f"
	colorError = "#FF0000"
)

// SlackPoster is the subset of the Slack client the notifier uses.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts each handler outcome to a Slack channel. It implements
// Middleware; any failure along the way is logged and swallowed so the
// handler's response is never affected.
type SlackNotifier struct {
	HandlerName string
	BaseChannel string
	Environment string
	SecretARN   string
	Secrets     data.SecretsRepository
	Logger      *logrus.Logger

	// NewClient builds the poster from a token. Tests substitute a mock;
	// when nil the real Slack client is used.
	NewClient func(token string) SlackPoster

	mu     sync.Mutex
	poster SlackPoster
}

func (n *SlackNotifier) After(ctx context.Context, request events.APIGatewayProxyRequest, response events.APIGatewayProxyResponse, handlerErr error) {
	succeeded := handlerErr == nil && response.StatusCode >= 200 && response.StatusCode < 300

	poster, err := n.client(ctx)
	if err != nil {
		n.Logger.WithError(err).WithField("operation", "SlackNotifier.After").
			Error("Failed to build Slack client")
		return
	}

	status := util.ConditionalString(succeeded, "Success", "Failure")
	color := util.ConditionalString(succeeded, colorInfo, colorError)
	message := fmt.Sprintf("%s %s", n.HandlerName,
		util.ConditionalString(succeeded, "executed successfully", "execution failed"))

	fields := []slack.AttachmentField{
		{Title: "Handler", Value: n.HandlerName, Short: true},
		{Title: "Status", Value: status, Short: true},
		{Title: "Environment", Value: n.Environment, Short: true},
	}
	if !succeeded {
		detail := response.Body
		if handlerErr != nil {
			detail = handlerErr.Error()
		}
		fields = append(fields, slack.AttachmentField{Title: "Error", Value: detail})
	}

	attachment := slack.Attachment{
		Color:  color,
		Text:   message,
		Fields: fields,
	}

	channel := n.channel(succeeded)
	if _, _, err := poster.PostMessageContext(ctx, channel, slack.MsgOptionAttachments(attachment)); err != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{
			"channel":   channel,
			"operation": "SlackNotifier.After",
		}).Error("Failed to send Slack notification")
	}
}

// channel picks the destination: the staging suffix wins in staging, error
// outcomes go to the alerts channel everywhere else.
func (n *SlackNotifier) channel(succeeded bool) string {
	if n.Environment == "staging" {
		return n.BaseChannel + "-staging"
	}
	return util.ConditionalString(succeeded, n.BaseChannel, n.BaseChannel+"-alerts")
}

func (n *SlackNotifier) client(ctx context.Context) (SlackPoster, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.poster != nil {
		return n.poster, nil
	}

	token, err := n.Secrets.GetSlackToken(ctx, n.SecretARN)
	if err != nil {
		return nil, err
	}

	if n.NewClient != nil {
		n.poster = n.NewClient(token)
	} else {
		n.poster = slack.New(token)
	}
	return n.poster, nil
}

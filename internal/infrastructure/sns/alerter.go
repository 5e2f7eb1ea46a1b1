package sns

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/hobbs-it/helpdesk-bot/internal/config"
)

// Alerter publishes operational alerts (failed ticket submissions) to an
// SNS topic watched by the helpdesk team.
type Alerter interface {
	Alert(ctx context.Context, subject, message string) error
}

type alerter struct {
	client   *sns.Client
	topicARN string
}

func NewAlerter(cfg *config.Config) (Alerter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &alerter{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSAlertTopicARN}, nil
}

func (a *alerter) Alert(ctx context.Context, subject, message string) error {
	_, err := a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &a.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	return err
}

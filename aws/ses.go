package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer sends transactional mail through SES. Callers treat sends as
// fire-and-forget: failures are logged by the caller and never surfaced to
// the client.
type Mailer struct {
	client      *ses.Client
	defaultFrom string
}

// NewMailer builds the client from AWS_REGION, AWS_SES_ACCESS_KEY,
// AWS_SES_SECRET_ACCESS_KEY and AWS_SES_DEFAULT_FROM.
func NewMailer(ctx context.Context) (*Mailer, error) {
	region := os.Getenv("AWS_REGION")
	from := os.Getenv("AWS_SES_DEFAULT_FROM")
	if region == "" || from == "" {
		return nil, fmt.Errorf("AWS_REGION and AWS_SES_DEFAULT_FROM must be set")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_SES_ACCESS_KEY"),
			os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Mailer{
		client:      ses.NewFromConfig(cfg),
		defaultFrom: from,
	}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	body := &types.Body{}
	if htmlBody != "" {
		body.Html = &types.Content{Data: sdkaws.String(htmlBody), Charset: sdkaws.String("UTF-8")}
	}
	if textBody != "" {
		body.Text = &types.Content{Data: sdkaws.String(textBody), Charset: sdkaws.String("UTF-8")}
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      sdkaws.String(m.defaultFrom),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: sdkaws.String(subject), Charset: sdkaws.String("UTF-8")},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// Package mailer implements the outbound email port for the planner API.
// The service layer depends on the Mailer interface; concrete implementations
// exist for AWS SES and a no-op provider used in development and tests.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/plannerhq/planner/internal/config"
)

// Mailer sends a single email. Implementations must be safe for concurrent
// use — trip confirmation fans out one Send per participant.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New creates a Mailer from config. Provider "ses" sends through AWS SES;
// "noop" or anything unrecognized returns a mailer that only logs.
func New(cfg config.MailConfig, log *slog.Logger) Mailer {
	switch cfg.Provider {
	case "ses":
		awsCfg := aws.Config{
			Region: cfg.AWSRegion,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			),
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: cfg.FromAddress,
			fromName:    cfg.FromName,
			log:         log,
		}
	case "noop":
		return &noopMailer{log: log}
	default:
		log.Warn("unknown mail provider, using noop", "provider", cfg.Provider)
		return &noopMailer{log: log}
	}
}

// sesMailer sends email through AWS SES.
type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
	log         *slog.Logger
}

func (m *sesMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	source := m.fromAddress
	if m.fromName != "" {
		source = fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(htmlBody),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("mailer: send via SES: %w", err)
	}

	m.log.Info("email sent", "to", to, "message_id", aws.ToString(result.MessageId))
	return nil
}

// noopMailer logs the email instead of sending it.
type noopMailer struct {
	log *slog.Logger
}

func (m *noopMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.Info("email suppressed (noop provider)", "to", to, "subject", subject)
	return nil
}

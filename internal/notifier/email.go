package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailSender là capability gửi email; Notifier chỉ gọi best-effort.
type EmailSender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// SESEmailSender gửi email qua AWS SES v2.
type SESEmailSender struct {
	client *sesv2.Client
	sender string // Địa chỉ đã verify trên SES
}

func NewSESEmailSender(client *sesv2.Client, sender string) *SESEmailSender {
	return &SESEmailSender{client: client, sender: sender}
}

func (s *SESEmailSender) Send(ctx context.Context, to string, subject string, body string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SESEmailSender.Send: %w", err)
	}
	return nil
}
